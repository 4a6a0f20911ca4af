package handler

import (
	"encoding/json"
	"net/http"

	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/usecase"
	"clinic-management-server/pkg/response"
	"clinic-management-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase      usecase.PatientUsecase
	appointmentUsecase  usecase.AppointmentUsecase
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPatientHandler(
	patientUsecase usecase.PatientUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	prescriptionUsecase usecase.PrescriptionUsecase,
	validator *validator.CustomValidator,
) *PatientHandler {
	return &PatientHandler{
		patientUsecase:      patientUsecase,
		appointmentUsecase:  appointmentUsecase,
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date of birth, use YYYY-MM-DD", nil)
		case usecase.ErrCNSAlreadyExists:
			response.Conflict(w, "CNS already registered")
		case usecase.ErrCPFAlreadyExists:
			response.Conflict(w, "CPF already registered")
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	patient, err := h.patientUsecase.Get(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrWaitingUnavailable:
			response.ServiceUnavailable(w, "Waiting status is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date of birth, use YYYY-MM-DD", nil)
		case usecase.ErrCNSAlreadyExists:
			response.Conflict(w, "CNS already registered")
		case usecase.ErrCPFAlreadyExists:
			response.Conflict(w, "CPF already registered")
		case usecase.ErrWaitingUnavailable:
			response.ServiceUnavailable(w, "Waiting status is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

// SearchPatients matches name or CNS; an empty query lists patients
func (h *PatientHandler) SearchPatients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	patients, err := h.patientUsecase.Search(r.Context(), query)
	if err != nil {
		switch err {
		case usecase.ErrWaitingUnavailable:
			response.ServiceUnavailable(w, "Waiting status is temporarily unavailable")
		default:
			response.InternalServerError(w, "Failed to search patients")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// GetPatientAppointments returns the patient's full visit history
func (h *PatientHandler) GetPatientAppointments(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	history, err := h.appointmentUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointment history")
		return
	}

	response.Success(w, http.StatusOK, "Appointment history retrieved successfully", history)
}

// GetActiveTreatments returns prescription items still in effect today
func (h *PatientHandler) GetActiveTreatments(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	treatments, err := h.prescriptionUsecase.ActiveTreatments(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get active treatments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Active treatments retrieved successfully", treatments)
}
