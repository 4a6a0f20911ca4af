package repository

import (
	"context"
	"errors"
	"time"

	"clinic-management-server/internal/domain/entity"
	domainRepo "clinic-management-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error {
	// Items ride along in one insert batch via the association.
	return db.WithContext(ctx).Create(prescription).Error
}

func (r *prescriptionRepository) FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("prescription_items.created_at ASC")
		}).
		Preload("Items.CatalogItem").
		Preload("Doctor").
		Where("appointment_id = ?", appointmentID).
		First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindActiveTreatmentsByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, day time.Time) ([]entity.ActiveTreatment, error) {
	var treatments []entity.ActiveTreatment
	err := db.WithContext(ctx).
		Table("prescription_items").
		Select(`
			prescription_items.id,
			prescription_items.type,
			prescription_items.name,
			prescription_items.dosage,
			prescription_items.frequency,
			prescription_items.duration,
			prescription_items.end_date,
			prescription_items.ongoing,
			prescriptions.created_at AS start_date,
			users.full_name AS doctor_name
		`).
		Joins("JOIN prescriptions ON prescriptions.id = prescription_items.prescription_id").
		Joins("JOIN appointments ON appointments.id = prescriptions.appointment_id").
		Joins("LEFT JOIN users ON users.id = prescriptions.doctor_id").
		Where("appointments.patient_id = ?", patientID).
		// SQL form of entity.PrescriptionItem.IsActiveOn; keep in sync.
		Where("prescription_items.ongoing OR prescription_items.end_date >= ?", day.Format("2006-01-02")).
		Order("prescription_items.end_date DESC NULLS LAST").
		Scan(&treatments).Error
	if err != nil {
		return nil, err
	}
	return treatments, nil
}
