package converter

import (
	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID,
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
		Date:      appointment.Date,
		Reason:    appointment.Reason,
		Notes:     appointment.Notes,
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}

	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.FullName
	}

	return response
}

// AppointmentToHistoryResponse annotates a visit history row with
// prescription existence and its diagnosis.
func AppointmentToHistoryResponse(appointment *entity.Appointment) *dto.AppointmentHistoryResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentHistoryResponse{
		AppointmentResponse: *AppointmentToResponse(appointment),
	}

	if appointment.Prescription != nil {
		response.HasPrescription = true
		response.Diagnosis = appointment.Prescription.Diagnosis
	}

	return response
}

// AppointmentsToHistoryResponses converts a patient's visit history
func AppointmentsToHistoryResponses(appointments []entity.Appointment) []dto.AppointmentHistoryResponse {
	responses := make([]dto.AppointmentHistoryResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToHistoryResponse(&appointments[i])
	}
	return responses
}

// AppointmentToAgendaEntry converts an Appointment (with Patient preloaded)
// to a calendar entry
func AppointmentToAgendaEntry(appointment *entity.Appointment) *dto.AgendaEntryResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AgendaEntryResponse{
		ID:           appointment.ID,
		PatientID:    appointment.PatientID,
		PatientName:  appointment.Patient.Name,
		PatientImage: appointment.Patient.ImageURL,
		Date:         appointment.Date,
		Reason:       appointment.Reason,
		Status:       string(appointment.Status),
	}
}

// AppointmentsToAgendaEntries converts a date-range listing
func AppointmentsToAgendaEntries(appointments []entity.Appointment) []dto.AgendaEntryResponse {
	entries := make([]dto.AgendaEntryResponse, len(appointments))
	for i := range appointments {
		entries[i] = *AppointmentToAgendaEntry(&appointments[i])
	}
	return entries
}
