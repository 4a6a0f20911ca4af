package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=255"`
	MotherName     string `json:"mother_name,omitempty" validate:"max=255"`
	IndigenousName string `json:"indigenous_name,omitempty" validate:"max=255"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	Village        string `json:"village" validate:"required,max=255"`
	Ethnicity      string `json:"ethnicity,omitempty" validate:"max=100"`
	CNS            string `json:"cns,omitempty" validate:"max=20"`
	CPF            string `json:"cpf,omitempty" validate:"max=14"`
}

type UpdatePatientRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=255"`
	MotherName     string `json:"mother_name,omitempty" validate:"max=255"`
	IndigenousName string `json:"indigenous_name,omitempty" validate:"max=255"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	Village        string `json:"village" validate:"required,max=255"`
	Ethnicity      string `json:"ethnicity,omitempty" validate:"max=100"`
	CNS            string `json:"cns,omitempty" validate:"max=20"`
	CPF            string `json:"cpf,omitempty" validate:"max=14"`
	Allergies      string `json:"allergies,omitempty"`
	Conditions     string `json:"conditions,omitempty"`
	BloodType      string `json:"blood_type,omitempty" validate:"max=3"`
}

// Response DTOs

// PatientResponse carries the effective status: when the patient has a
// scheduled appointment today the stored label is overridden with
// "Aguardando" at read time.
type PatientResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	MotherName     string     `json:"mother_name,omitempty"`
	IndigenousName string     `json:"indigenous_name,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Age            int        `json:"age"`
	Village        string     `json:"village"`
	Ethnicity      string     `json:"ethnicity,omitempty"`
	CNS            string     `json:"cns,omitempty"`
	CPF            string     `json:"cpf,omitempty"`
	Allergies      string     `json:"allergies,omitempty"`
	Conditions     string     `json:"conditions,omitempty"`
	BloodType      string     `json:"blood_type,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
