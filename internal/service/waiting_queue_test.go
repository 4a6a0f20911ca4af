package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"clinic-management-server/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// countingAppointmentRepo answers the scheduled-count queries the queue
// falls back to when Redis cannot serve a day key.
type countingAppointmentRepo struct {
	scheduledCount int64
	countErr       error
	scheduledIDs   []uuid.UUID
}

func (r *countingAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}

func (r *countingAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}

func (r *countingAppointmentRepo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}

func (r *countingAppointmentRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *countingAppointmentRepo) FindByDateRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *countingAppointmentRepo) UpdateScheduledFields(ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	return 0, nil
}

func (r *countingAppointmentRepo) MarkCompleted(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *countingAppointmentRepo) CountScheduledInRange(ctx context.Context, db *gorm.DB, patientID uuid.UUID, start, end time.Time) (int64, error) {
	return r.scheduledCount, r.countErr
}

func (r *countingAppointmentRepo) FindScheduledPatientIDsInRange(ctx context.Context, db *gorm.DB, start, end time.Time, limit, offset int) ([]uuid.UUID, error) {
	if r.countErr != nil {
		return nil, r.countErr
	}
	if offset > 0 {
		return nil, nil
	}
	return r.scheduledIDs, nil
}

func newQueueFixture(t *testing.T, repo *countingAppointmentRepo) *WaitingQueueService {
	t.Helper()

	mockConn, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() { mockConn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockConn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	// Port 1 is never listening, so every Redis call fails and the
	// service must decide from the repository.
	return NewWaitingQueueService(
		db,
		redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
		log,
		time.UTC,
		repo,
	)
}

func TestIsWaitingFallsBackToDatabase(t *testing.T) {
	ctx := context.Background()
	patientID := uuid.New()

	t.Run("scheduled appointment today means waiting", func(t *testing.T) {
		q := newQueueFixture(t, &countingAppointmentRepo{scheduledCount: 1})

		waiting, err := q.IsWaiting(ctx, patientID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !waiting {
			t.Error("expected waiting = true")
		}
	})

	t.Run("no scheduled appointment means not waiting", func(t *testing.T) {
		q := newQueueFixture(t, &countingAppointmentRepo{scheduledCount: 0})

		waiting, err := q.IsWaiting(ctx, patientID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if waiting {
			t.Error("expected waiting = false")
		}
	})

	t.Run("database failure is surfaced, not read as empty", func(t *testing.T) {
		q := newQueueFixture(t, &countingAppointmentRepo{countErr: errors.New("connection refused")})

		_, err := q.IsWaiting(ctx, patientID)
		if err == nil {
			t.Fatal("expected an error when both Redis and the database fail")
		}
	})
}

func TestWaitingSetFallsBackToDatabase(t *testing.T) {
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	q := newQueueFixture(t, &countingAppointmentRepo{scheduledIDs: []uuid.UUID{a, b}})

	set, err := q.WaitingSet(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 2 || !set[a] || !set[b] {
		t.Errorf("expected both patients in the set, got %v", set)
	}
}

func TestResyncToleratesUnavailableRedis(t *testing.T) {
	q := newQueueFixture(t, &countingAppointmentRepo{scheduledCount: 1})

	// Must not panic or block; failures on the write path are logged only.
	q.Resync(context.Background(), uuid.New())
}
