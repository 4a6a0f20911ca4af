package converter

import (
	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/domain/entity"
)

// CatalogItemToResponse converts a CatalogItem entity to its DTO
func CatalogItemToResponse(item *entity.CatalogItem) *dto.CatalogItemResponse {
	if item == nil {
		return nil
	}

	return &dto.CatalogItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Kind:           string(item.Kind),
		ScientificName: item.ScientificName,
		Indication:     item.Indication,
		Preparation:    item.Preparation,
		StockQuantity:  item.StockQuantity,
		StockUnit:      item.StockUnit,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// CatalogItemsToResponses converts a catalog listing
func CatalogItemsToResponses(items []entity.CatalogItem) []dto.CatalogItemResponse {
	responses := make([]dto.CatalogItemResponse, len(items))
	for i := range items {
		responses[i] = *CatalogItemToResponse(&items[i])
	}
	return responses
}
