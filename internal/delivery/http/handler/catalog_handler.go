package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/usecase"
	"clinic-management-server/pkg/response"
	"clinic-management-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCatalogItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.catalogUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create catalog item")
		return
	}

	response.Success(w, http.StatusCreated, "Catalog item created successfully", item)
}

func (h *CatalogHandler) GetAllItems(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	items, total, err := h.catalogUsecase.GetAll(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get catalog items")
		return
	}

	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	response.SuccessWithMeta(w, http.StatusOK, "Catalog items retrieved successfully", items, meta)
}

func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid catalog item ID", nil)
		return
	}

	item, err := h.catalogUsecase.GetByID(r.Context(), itemID)
	if err != nil {
		switch err {
		case usecase.ErrCatalogItemNotFound:
			response.NotFound(w, "Catalog item not found")
		default:
			response.InternalServerError(w, "Failed to get catalog item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Catalog item retrieved successfully", item)
}

func (h *CatalogHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid catalog item ID", nil)
		return
	}

	var req dto.UpdateCatalogItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.catalogUsecase.Update(r.Context(), itemID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCatalogItemNotFound:
			response.NotFound(w, "Catalog item not found")
		default:
			response.InternalServerError(w, "Failed to update catalog item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Catalog item updated successfully", item)
}

func (h *CatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid catalog item ID", nil)
		return
	}

	if err := h.catalogUsecase.Delete(r.Context(), itemID); err != nil {
		switch err {
		case usecase.ErrCatalogItemNotFound:
			response.NotFound(w, "Catalog item not found")
		case usecase.ErrCatalogItemInUse:
			response.Conflict(w, "Catalog item is referenced by prescriptions")
		default:
			response.InternalServerError(w, "Failed to delete catalog item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Catalog item deleted successfully", nil)
}
