package handler

import (
	"encoding/json"
	"net/http"

	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/usecase"
	"clinic-management-server/pkg/response"
	"clinic-management-server/pkg/validator"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

// FinalizePrescription records a prescription and completes its
// appointment. A 201 with a follow_up_error field means the prescription
// committed but the follow-up booking failed.
func (h *PrescriptionHandler) FinalizePrescription(w http.ResponseWriter, r *http.Request) {
	var req dto.FinalizePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.prescriptionUsecase.Finalize(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrEmptyPrescription:
			response.Error(w, http.StatusBadRequest, "Prescription must have items or notes", nil)
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD or an ISO timestamp", nil)
		case usecase.ErrInvalidTransition:
			response.Conflict(w, "Appointment is cancelled")
		case usecase.ErrAlreadyFinalized:
			response.Conflict(w, "Appointment already has a prescription")
		default:
			response.InternalServerError(w, "Failed to finalize prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription finalized successfully", result)
}
