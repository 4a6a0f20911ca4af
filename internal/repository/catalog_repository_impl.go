package repository

import (
	"context"
	"errors"

	"clinic-management-server/internal/domain/entity"
	domainRepo "clinic-management-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type catalogRepository struct{}

func NewCatalogRepository() domainRepo.CatalogRepository {
	return &catalogRepository{}
}

func (r *catalogRepository) Create(ctx context.Context, db *gorm.DB, item *entity.CatalogItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository) FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.CatalogItem, int64, error) {
	var items []entity.CatalogItem
	var total int64

	if err := db.WithContext(ctx).Model(&entity.CatalogItem{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.WithContext(ctx).Limit(limit).Offset(offset).Order("name ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *catalogRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) Update(ctx context.Context, db *gorm.DB, item *entity.CatalogItem) error {
	return db.WithContext(ctx).Save(item).Error
}

func (r *catalogRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.CatalogItem{}).Error
}
