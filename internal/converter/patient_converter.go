package converter

import (
	"time"

	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its DTO. The waiting flag
// overrides the stored status for display; it is never written back.
func PatientToResponse(patient *entity.Patient, waiting bool) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	status := patient.Status
	if waiting {
		status = entity.StatusWaiting
	}

	return &dto.PatientResponse{
		ID:             patient.ID,
		Name:           patient.Name,
		MotherName:     patient.MotherName,
		IndigenousName: patient.IndigenousName,
		DateOfBirth:    patient.DateOfBirth,
		Age:            ageInYears(patient.DateOfBirth, time.Now()),
		Village:        patient.Village,
		Ethnicity:      patient.Ethnicity,
		CNS:            patient.CNS,
		CPF:            patient.CPF,
		Allergies:      patient.Allergies,
		Conditions:     patient.Conditions,
		BloodType:      patient.BloodType,
		ImageURL:       patient.ImageURL,
		Status:         status,
		CreatedAt:      patient.CreatedAt,
		UpdatedAt:      patient.UpdatedAt,
	}
}

func ageInYears(dob *time.Time, now time.Time) int {
	if dob == nil {
		return 0
	}
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
