package repository

import (
	"context"
	"errors"
	"time"

	"clinic-management-server/internal/domain/entity"
	domainRepo "clinic-management-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindByIDForUpdate holds a row lock until the surrounding transaction
// ends, serializing the check-then-act sequence in finalization.
func (r *appointmentRepository) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor").
		Preload("Prescription").
		Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDateRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient").
		Where("date >= ? AND date < ?", start, end).
		Order("date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateScheduledFields writes fields only while the row is Scheduled.
// RowsAffected 0 distinguishes terminal/missing appointments without a
// separate read (no window for a lost update).
func (r *appointmentRepository) UpdateScheduledFields(ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) MarkCompleted(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).
		Update("status", entity.AppointmentStatusCompleted)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountScheduledInRange(ctx context.Context, db *gorm.DB, patientID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("patient_id = ? AND status = ? AND date >= ? AND date < ?",
			patientID, entity.AppointmentStatusScheduled, start, end).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) FindScheduledPatientIDsInRange(ctx context.Context, db *gorm.DB, start, end time.Time, limit, offset int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Distinct("patient_id").
		Where("status = ? AND date >= ? AND date < ?", entity.AppointmentStatusScheduled, start, end).
		Order("patient_id").
		Limit(limit).
		Offset(offset).
		Pluck("patient_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
