package repository

import (
	"context"
	"time"

	"clinic-management-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindByIDForUpdate locks the appointment row for the duration of the
	// surrounding transaction (SELECT ... FOR UPDATE).
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDateRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]entity.Appointment, error)
	// UpdateScheduledFields applies the given column updates only while the
	// appointment is still Scheduled. Returns affected rows: 0 means the
	// appointment is terminal (or missing) and nothing was written.
	UpdateScheduledFields(ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]interface{}) (int64, error)
	// MarkCompleted transitions Scheduled -> Completed. Returns affected
	// rows so callers can detect a lost finalization race.
	MarkCompleted(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	CountScheduledInRange(ctx context.Context, db *gorm.DB, patientID uuid.UUID, start, end time.Time) (int64, error)
	FindScheduledPatientIDsInRange(ctx context.Context, db *gorm.DB, start, end time.Time, limit, offset int) ([]uuid.UUID, error)
}
