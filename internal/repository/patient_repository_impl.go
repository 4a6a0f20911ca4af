package repository

import (
	"context"
	"errors"

	"clinic-management-server/internal/domain/entity"
	domainRepo "clinic-management-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	tx := db.WithContext(ctx).Model(&entity.Patient{})
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("name ILIKE ? OR cns ILIKE ?", pattern, pattern)
	}
	err := tx.Order("name ASC").Limit(limit).Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}
