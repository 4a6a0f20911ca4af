package repository

import (
	"context"

	"clinic-management-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	// Search matches name or CNS (case-insensitive substring). An empty
	// query lists the first `limit` patients by name.
	Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]entity.Patient, error)
}
