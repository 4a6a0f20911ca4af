package converter

import (
	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to its DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:            prescription.ID,
		AppointmentID: prescription.AppointmentID,
		DoctorID:      prescription.DoctorID,
		Notes:         prescription.Notes,
		Diagnosis:     prescription.Diagnosis,
		CreatedAt:     prescription.CreatedAt,
	}

	if prescription.Doctor != nil {
		response.DoctorName = prescription.Doctor.FullName
	}

	return response
}

// PrescriptionItemToResponse converts a PrescriptionItem entity to its DTO
func PrescriptionItemToResponse(item *entity.PrescriptionItem) *dto.PrescriptionItemResponse {
	if item == nil {
		return nil
	}

	response := &dto.PrescriptionItemResponse{
		ID:            item.ID,
		Type:          string(item.Type),
		Name:          item.Name,
		Dosage:        item.Dosage,
		Frequency:     item.Frequency,
		Duration:      item.Duration,
		EndDate:       item.EndDate,
		Ongoing:       item.Ongoing,
		CatalogItemID: item.CatalogItemID,
	}

	if item.CatalogItem != nil {
		response.CatalogItemName = item.CatalogItem.Name
	}

	return response
}

// PrescriptionItemsToResponses converts prescription items in insertion order
func PrescriptionItemsToResponses(items []entity.PrescriptionItem) []dto.PrescriptionItemResponse {
	responses := make([]dto.PrescriptionItemResponse, len(items))
	for i := range items {
		responses[i] = *PrescriptionItemToResponse(&items[i])
	}
	return responses
}

// ActiveTreatmentsToResponses converts the active-treatment read model
func ActiveTreatmentsToResponses(treatments []entity.ActiveTreatment) []dto.ActiveTreatmentResponse {
	responses := make([]dto.ActiveTreatmentResponse, len(treatments))
	for i, t := range treatments {
		responses[i] = dto.ActiveTreatmentResponse{
			ID:         t.ID,
			Type:       string(t.Type),
			Name:       t.Name,
			Dosage:     t.Dosage,
			Frequency:  t.Frequency,
			Duration:   t.Duration,
			EndDate:    t.EndDate,
			Ongoing:    t.Ongoing,
			StartDate:  t.StartDate,
			DoctorName: t.DoctorName,
		}
	}
	return responses
}
