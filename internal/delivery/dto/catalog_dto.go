package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateCatalogItemRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=255"`
	Kind           string          `json:"kind" validate:"required,oneof=plant compound"`
	ScientificName string          `json:"scientific_name,omitempty" validate:"max=255"`
	Indication     string          `json:"indication,omitempty"`
	Preparation    string          `json:"preparation,omitempty"`
	StockQuantity  decimal.Decimal `json:"stock_quantity"`
	StockUnit      string          `json:"stock_unit,omitempty" validate:"max=20"`
}

type UpdateCatalogItemRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=255"`
	Kind           string          `json:"kind" validate:"required,oneof=plant compound"`
	ScientificName string          `json:"scientific_name,omitempty" validate:"max=255"`
	Indication     string          `json:"indication,omitempty"`
	Preparation    string          `json:"preparation,omitempty"`
	StockQuantity  decimal.Decimal `json:"stock_quantity"`
	StockUnit      string          `json:"stock_unit,omitempty" validate:"max=20"`
}

// Response DTOs

type CatalogItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	ScientificName string          `json:"scientific_name,omitempty"`
	Indication     string          `json:"indication,omitempty"`
	Preparation    string          `json:"preparation,omitempty"`
	StockQuantity  decimal.Decimal `json:"stock_quantity"`
	StockUnit      string          `json:"stock_unit,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
