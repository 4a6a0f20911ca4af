package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type PrescriptionItemRequest struct {
	Type          string     `json:"type" validate:"required,oneof=Allopathic Traditional"`
	Name          string     `json:"name" validate:"required,max=255"`
	Dosage        string     `json:"dosage,omitempty" validate:"max=255"`
	Frequency     string     `json:"frequency,omitempty" validate:"max=255"`
	Duration      string     `json:"duration,omitempty" validate:"max=255"`
	EndDate       string     `json:"end_date,omitempty"`
	CatalogItemID *uuid.UUID `json:"catalog_item_id,omitempty"`
}

// FollowUpRequest books a return visit after finalization. Date is a bare
// YYYY-MM-DD; Time is HH:MM (defaults to 09:00 when empty).
type FollowUpRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time,omitempty"`
}

type FinalizePrescriptionRequest struct {
	AppointmentID uuid.UUID                 `json:"appointment_id" validate:"required"`
	DoctorID      *uuid.UUID                `json:"doctor_id,omitempty"`
	Items         []PrescriptionItemRequest `json:"items" validate:"dive"`
	Notes         string                    `json:"notes,omitempty"`
	Diagnosis     string                    `json:"diagnosis,omitempty"`
	FollowUp      *FollowUpRequest          `json:"follow_up,omitempty"`
}

// Response DTOs

type PrescriptionItemResponse struct {
	ID              uuid.UUID  `json:"id"`
	Type            string     `json:"type"`
	Name            string     `json:"name"`
	Dosage          string     `json:"dosage,omitempty"`
	Frequency       string     `json:"frequency,omitempty"`
	Duration        string     `json:"duration,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Ongoing         bool       `json:"ongoing"`
	CatalogItemID   *uuid.UUID `json:"catalog_item_id,omitempty"`
	CatalogItemName string     `json:"catalog_item_name,omitempty"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID  `json:"id"`
	AppointmentID uuid.UUID  `json:"appointment_id"`
	DoctorID      *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName    string     `json:"doctor_name,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Diagnosis     string     `json:"diagnosis,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// FinalizePrescriptionResponse reports the committed prescription and, when
// a follow-up was requested, either the booked appointment or the reason
// booking failed. A follow-up failure never undoes the prescription.
type FinalizePrescriptionResponse struct {
	PrescriptionID        uuid.UUID  `json:"prescription_id"`
	AppointmentID         uuid.UUID  `json:"appointment_id"`
	AppointmentStatus     string     `json:"appointment_status"`
	FollowUpAppointmentID *uuid.UUID `json:"follow_up_appointment_id,omitempty"`
	FollowUpError         string     `json:"follow_up_error,omitempty"`
}

type ActiveTreatmentResponse struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Dosage     string     `json:"dosage,omitempty"`
	Frequency  string     `json:"frequency,omitempty"`
	Duration   string     `json:"duration,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Ongoing    bool       `json:"ongoing"`
	StartDate  time.Time  `json:"start_date"`
	DoctorName string     `json:"doctor_name,omitempty"`
}

type ActiveTreatmentListResponse struct {
	Treatments []ActiveTreatmentResponse `json:"treatments"`
	Total      int                       `json:"total"`
}
