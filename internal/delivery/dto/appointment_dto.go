package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID uuid.UUID  `json:"patient_id" validate:"required"`
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
	// Date accepts a bare YYYY-MM-DD (anchored at clinic noon) or an ISO
	// timestamp; empty means now.
	Date   string `json:"date,omitempty"`
	Reason string `json:"reason,omitempty" validate:"max=255"`
	Notes  string `json:"notes,omitempty"`
}

// UpdateAppointmentRequest covers the two operator mutations: cancel
// (status=Cancelled) and bring-to-now (date rewrite). Completed is never an
// acceptable target; it comes only from prescription finalization.
type UpdateAppointmentRequest struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=Cancelled"`
	Date   string `json:"date,omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID         uuid.UUID  `json:"id"`
	PatientID  uuid.UUID  `json:"patient_id"`
	DoctorID   *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName string     `json:"doctor_name,omitempty"`
	Date       time.Time  `json:"date"`
	Reason     string     `json:"reason"`
	Notes      string     `json:"notes,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AppointmentHistoryResponse is one row of a patient's visit history,
// annotated with prescription existence for the record view.
type AppointmentHistoryResponse struct {
	AppointmentResponse
	HasPrescription bool   `json:"has_prescription"`
	Diagnosis       string `json:"diagnosis,omitempty"`
}

type AppointmentHistoryListResponse struct {
	Appointments []AppointmentHistoryResponse `json:"appointments"`
	Total        int                          `json:"total"`
}

// AgendaEntryResponse is one calendar cell of the agenda range view.
type AgendaEntryResponse struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patient_id"`
	PatientName  string    `json:"patient_name"`
	PatientImage string    `json:"patient_image,omitempty"`
	Date         time.Time `json:"date"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
}

type AgendaResponse struct {
	Appointments []AgendaEntryResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// AppointmentDetailsResponse joins an appointment with its prescription
// and items for the detail/reprint view.
type AppointmentDetailsResponse struct {
	Appointment  AppointmentResponse        `json:"appointment"`
	Prescription *PrescriptionResponse      `json:"prescription,omitempty"`
	Items        []PrescriptionItemResponse `json:"items"`
}
