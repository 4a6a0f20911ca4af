package repository

import (
	"context"
	"time"

	"clinic-management-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	// Create inserts the prescription together with its items, preserving
	// input order.
	Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error
	FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.Prescription, error)
	// FindActiveTreatmentsByPatient returns the patient's prescription items
	// still in effect on the given day: ongoing regimens, or end dates on or
	// after it. Ordered by end date descending with open-ended rows last.
	FindActiveTreatmentsByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, day time.Time) ([]entity.ActiveTreatment, error)
}
