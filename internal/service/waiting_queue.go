package service

import (
	"context"
	"fmt"
	"time"

	"clinic-management-server/internal/domain/repository"
	"clinic-management-server/pkg/clock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// Redis key prefix for the per-day waiting set
	waitingKeyPrefix = "clinic:waiting:"

	// Batch size for the startup rebuild
	syncBatchSize = 500

	// Keys outlive their day by a grace hour so late readers still hit
	keyGracePeriod = time.Hour
)

// WaitingQueueService maintains a Redis set of patients with a Scheduled
// appointment today, keyed by clinic calendar day. The set is a cache of
// derived state: it is rebuilt from Postgres on startup, updated
// best-effort on every appointment mutation, and the read path falls back
// to Postgres whenever Redis cannot answer. A Postgres failure is
// surfaced to the caller — the queue must never silently read as empty.
type WaitingQueueService struct {
	db              *gorm.DB
	redisClient     *redis.Client
	log             *logrus.Logger
	location        *time.Location
	appointmentRepo repository.AppointmentRepository
}

func NewWaitingQueueService(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	location *time.Location,
	appointmentRepo repository.AppointmentRepository,
) *WaitingQueueService {
	return &WaitingQueueService{
		db:              db,
		redisClient:     redisClient,
		log:             log,
		location:        location,
		appointmentRepo: appointmentRepo,
	}
}

// SyncOnStartup rebuilds today's waiting set from the database in batches.
// Should run before the server accepts traffic.
func (s *WaitingQueueService) SyncOnStartup(ctx context.Context) error {
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping waiting queue sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	start, end := clock.DayBounds(time.Now(), s.location)
	key := s.dayKey(start)

	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear waiting set %s: %w", key, err)
	}

	offset := 0
	totalSynced := 0

	for {
		ids, err := s.appointmentRepo.FindScheduledPatientIDsInRange(ctx, s.db, start, end, syncBatchSize, offset)
		if err != nil {
			s.log.Errorf("Failed to query waiting patients at offset %d: %+v", offset, err)
			return fmt.Errorf("query waiting patients at offset %d: %w", offset, err)
		}
		if len(ids) == 0 {
			break
		}

		members := make([]interface{}, len(ids))
		for i, id := range ids {
			members[i] = id.String()
		}

		pipe := s.redisClient.TxPipeline()
		pipe.SAdd(ctx, key, members...)
		pipe.ExpireAt(ctx, key, end.Add(keyGracePeriod))
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("populate waiting set at offset %d: %w", offset, err)
		}

		totalSynced += len(ids)
		if len(ids) < syncBatchSize {
			break
		}
		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Waiting queue synced: %d patients for %s", totalSynced, start.Format("2006-01-02"))
	return nil
}

// Resync recomputes one patient's membership from the database and writes
// it through to Redis. Best-effort: Redis failures are logged, never
// returned, since the read path falls back to Postgres anyway.
func (s *WaitingQueueService) Resync(ctx context.Context, patientID uuid.UUID) {
	start, end := clock.DayBounds(time.Now(), s.location)

	count, err := s.appointmentRepo.CountScheduledInRange(ctx, s.db, patientID, start, end)
	if err != nil {
		s.log.Warnf("Failed to recompute waiting membership for patient %s: %+v", patientID, err)
		return
	}

	key := s.dayKey(start)
	pipe := s.redisClient.TxPipeline()
	if count > 0 {
		pipe.SAdd(ctx, key, patientID.String())
		pipe.ExpireAt(ctx, key, end.Add(keyGracePeriod))
	} else {
		pipe.SRem(ctx, key, patientID.String())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to update waiting set for patient %s (non-fatal): %+v", patientID, err)
	}
}

// IsWaiting reports whether the patient has a Scheduled appointment today.
// Redis answers when the day key exists; otherwise the database decides.
func (s *WaitingQueueService) IsWaiting(ctx context.Context, patientID uuid.UUID) (bool, error) {
	start, end := clock.DayBounds(time.Now(), s.location)
	key := s.dayKey(start)

	exists, err := s.redisClient.Exists(ctx, key).Result()
	if err == nil && exists > 0 {
		member, err := s.redisClient.SIsMember(ctx, key, patientID.String()).Result()
		if err == nil {
			return member, nil
		}
		s.log.Warnf("Waiting set read failed, falling back to database: %+v", err)
	} else if err != nil {
		s.log.Warnf("Waiting set lookup failed, falling back to database: %+v", err)
	}

	count, err := s.appointmentRepo.CountScheduledInRange(ctx, s.db, patientID, start, end)
	if err != nil {
		return false, fmt.Errorf("waiting status unavailable for patient %s: %w", patientID, err)
	}
	return count > 0, nil
}

// WaitingSet returns all patients waiting today, for list views that
// override many statuses at once.
func (s *WaitingQueueService) WaitingSet(ctx context.Context) (map[uuid.UUID]bool, error) {
	start, end := clock.DayBounds(time.Now(), s.location)
	key := s.dayKey(start)

	exists, err := s.redisClient.Exists(ctx, key).Result()
	if err == nil && exists > 0 {
		members, err := s.redisClient.SMembers(ctx, key).Result()
		if err == nil {
			set := make(map[uuid.UUID]bool, len(members))
			for _, m := range members {
				if id, parseErr := uuid.Parse(m); parseErr == nil {
					set[id] = true
				}
			}
			return set, nil
		}
		s.log.Warnf("Waiting set read failed, falling back to database: %+v", err)
	} else if err != nil {
		s.log.Warnf("Waiting set lookup failed, falling back to database: %+v", err)
	}

	set := make(map[uuid.UUID]bool)
	offset := 0
	for {
		ids, err := s.appointmentRepo.FindScheduledPatientIDsInRange(ctx, s.db, start, end, syncBatchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("waiting set unavailable: %w", err)
		}
		for _, id := range ids {
			set[id] = true
		}
		if len(ids) < syncBatchSize {
			return set, nil
		}
		offset += syncBatchSize
	}
}

func (s *WaitingQueueService) dayKey(dayStart time.Time) string {
	return waitingKeyPrefix + dayStart.Format("2006-01-02")
}
