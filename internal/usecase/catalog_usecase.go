package usecase

import (
	"context"
	"errors"

	"clinic-management-server/internal/converter"
	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/domain/entity"
	"clinic-management-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrCatalogItemInUse    = errors.New("catalog item is referenced by prescriptions")
)

type CatalogUsecase interface {
	Create(ctx context.Context, req *dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error)
	GetAll(ctx context.Context, page, limit int) ([]dto.CatalogItemResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CatalogItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	catalogRepo repository.CatalogRepository
}

func NewCatalogUsecase(db *gorm.DB, log *logrus.Logger, catalogRepo repository.CatalogRepository) CatalogUsecase {
	return &catalogUsecase{
		db:          db,
		log:         log,
		catalogRepo: catalogRepo,
	}
}

func (u *catalogUsecase) Create(ctx context.Context, req *dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	item := &entity.CatalogItem{
		Name:           req.Name,
		Kind:           entity.CatalogItemKind(req.Kind),
		ScientificName: req.ScientificName,
		Indication:     req.Indication,
		Preparation:    req.Preparation,
		StockQuantity:  req.StockQuantity,
		StockUnit:      req.StockUnit,
	}

	if err := u.catalogRepo.Create(ctx, u.db, item); err != nil {
		u.log.Warnf("Failed to create catalog item: %+v", err)
		return nil, err
	}

	return converter.CatalogItemToResponse(item), nil
}

func (u *catalogUsecase) GetAll(ctx context.Context, page, limit int) ([]dto.CatalogItemResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit

	items, total, err := u.catalogRepo.FindAll(ctx, u.db, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list catalog items: %+v", err)
		return nil, 0, err
	}

	return converter.CatalogItemsToResponses(items), total, nil
}

func (u *catalogUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.CatalogItemResponse, error) {
	item, err := u.catalogRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find catalog item %s: %+v", id, err)
		return nil, err
	}
	if item == nil {
		return nil, ErrCatalogItemNotFound
	}

	return converter.CatalogItemToResponse(item), nil
}

func (u *catalogUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	item, err := u.catalogRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find catalog item %s: %+v", id, err)
		return nil, err
	}
	if item == nil {
		return nil, ErrCatalogItemNotFound
	}

	item.Name = req.Name
	item.Kind = entity.CatalogItemKind(req.Kind)
	item.ScientificName = req.ScientificName
	item.Indication = req.Indication
	item.Preparation = req.Preparation
	item.StockQuantity = req.StockQuantity
	item.StockUnit = req.StockUnit

	if err := u.catalogRepo.Update(ctx, u.db, item); err != nil {
		u.log.Warnf("Failed to update catalog item %s: %+v", id, err)
		return nil, err
	}

	return converter.CatalogItemToResponse(item), nil
}

func (u *catalogUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := u.catalogRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find catalog item %s: %+v", id, err)
		return err
	}
	if item == nil {
		return ErrCatalogItemNotFound
	}

	if err := u.catalogRepo.Delete(ctx, u.db, id); err != nil {
		if isForeignKeyError(err, "catalog_item") {
			return ErrCatalogItemInUse
		}
		u.log.Warnf("Failed to delete catalog item %s: %+v", id, err)
		return err
	}

	return nil
}
