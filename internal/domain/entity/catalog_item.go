package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogItemKind tags a pharmacy catalog entry
type CatalogItemKind string

const (
	CatalogKindPlant    CatalogItemKind = "plant"
	CatalogKindCompound CatalogItemKind = "compound"
)

// CatalogItem represents an entry in the herbal pharmacy registry.
// Prescription items may reference an entry informationally; deleting a
// catalog entry never touches prescriptions.
type CatalogItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string          `gorm:"type:varchar(255);not null;index"`
	Kind           CatalogItemKind `gorm:"type:varchar(20);not null;default:'plant'"`
	ScientificName string          `gorm:"type:varchar(255)"`
	Indication     string          `gorm:"type:text"`
	Preparation    string          `gorm:"type:text"`
	StockQuantity  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockUnit      string          `gorm:"type:varchar(20)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}
