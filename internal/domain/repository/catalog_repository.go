package repository

import (
	"context"

	"clinic-management-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepository interface {
	Create(ctx context.Context, db *gorm.DB, item *entity.CatalogItem) error
	FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.CatalogItem, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.CatalogItem, error)
	Update(ctx context.Context, db *gorm.DB, item *entity.CatalogItem) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
