package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-management-server/config"
	"clinic-management-server/internal/converter"
	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/domain/entity"
	"clinic-management-server/internal/domain/repository"
	"clinic-management-server/internal/service"
	"clinic-management-server/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("appointment is already completed or cancelled")
	ErrInvalidDate         = errors.New("invalid date, use YYYY-MM-DD or an ISO timestamp")
	ErrNoFieldsToUpdate    = errors.New("nothing to update, provide status and/or date")
)

const defaultAppointmentReason = "Consulta"

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	// Update covers cancel and bring-to-now. Terminal appointments reject
	// every mutation with ErrInvalidTransition.
	Update(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) error
	ListByRange(ctx context.Context, startDate, endDate string) (*dto.AgendaResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentHistoryListResponse, error)
	GetDetails(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentDetailsResponse, error)
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	clinic           config.ClinicConfig
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	prescriptionRepo repository.PrescriptionRepository
	waitingQueue     *service.WaitingQueueService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinic config.ClinicConfig,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	prescriptionRepo repository.PrescriptionRepository,
	waitingQueue *service.WaitingQueueService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		clinic:           clinic,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		prescriptionRepo: prescriptionRepo,
		waitingQueue:     waitingQueue,
	}
}

// Create schedules a new appointment. Status is always Scheduled; a
// missing doctor falls back to the configured default clinician; a bare
// date is anchored at clinic noon.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	date, err := clock.ResolveVisitDate(req.Date, u.clinic.Location, time.Now)
	if err != nil {
		return nil, ErrInvalidDate
	}

	reason := req.Reason
	if reason == "" {
		reason = defaultAppointmentReason
	}

	appointment := &entity.Appointment{
		PatientID: req.PatientID,
		DoctorID:  u.resolveDoctorID(req.DoctorID),
		Date:      date,
		Reason:    reason,
		Notes:     req.Notes,
		Status:    entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(ctx, u.db, appointment); err != nil {
		u.log.Warnf("Failed to create appointment for patient %s: %+v", req.PatientID, err)
		return nil, err
	}

	u.waitingQueue.Resync(ctx, appointment.PatientID)

	u.log.Infof("Appointment created: id=%s, patient=%s, date=%s", appointment.ID, appointment.PatientID, appointment.Date.Format(time.RFC3339))
	return converter.AppointmentToResponse(appointment), nil
}

// Update applies a cancel and/or a date rewrite. The conditional UPDATE
// only matches rows still in Scheduled, so a terminal appointment yields
// zero affected rows and ErrInvalidTransition.
func (u *appointmentUsecase) Update(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) error {
	fields := map[string]interface{}{}

	if req.Status != "" {
		if entity.AppointmentStatus(req.Status) != entity.AppointmentStatusCancelled {
			return ErrInvalidTransition
		}
		fields["status"] = entity.AppointmentStatusCancelled
	}

	if req.Date != "" {
		date, err := clock.ResolveVisitDate(req.Date, u.clinic.Location, time.Now)
		if err != nil {
			return ErrInvalidDate
		}
		fields["date"] = date
	}

	if len(fields) == 0 {
		return ErrNoFieldsToUpdate
	}

	rows, err := u.appointmentRepo.UpdateScheduledFields(ctx, u.db, appointmentID, fields)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return err
	}

	if rows == 0 {
		appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		return ErrInvalidTransition
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err == nil && appointment != nil {
		u.waitingQueue.Resync(ctx, appointment.PatientID)
	}

	u.log.Infof("Appointment updated: id=%s", appointmentID)
	return nil
}

func (u *appointmentUsecase) ListByRange(ctx context.Context, startDate, endDate string) (*dto.AgendaResponse, error) {
	start, err := clock.ResolveVisitDate(startDate, u.clinic.Location, time.Now)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := clock.ResolveVisitDate(endDate, u.clinic.Location, time.Now)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// A bare end date means "through that whole day".
	if len(endDate) <= 10 {
		_, end = clock.DayBounds(end, u.clinic.Location)
	}
	if len(startDate) <= 10 {
		start, _ = clock.DayBounds(start, u.clinic.Location)
	}

	appointments, err := u.appointmentRepo.FindByDateRange(ctx, u.db, start, end)
	if err != nil {
		u.log.Warnf("Failed to list appointments between %s and %s: %+v", startDate, endDate, err)
		return nil, err
	}

	return &dto.AgendaResponse{
		Appointments: converter.AppointmentsToAgendaEntries(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentHistoryListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentHistoryListResponse{
		Appointments: converter.AppointmentsToHistoryResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDetails(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentDetailsResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	details := &dto.AppointmentDetailsResponse{
		Appointment: *converter.AppointmentToResponse(appointment),
		Items:       []dto.PrescriptionItemResponse{},
	}

	prescription, err := u.prescriptionRepo.FindByAppointmentID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find prescription for appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if prescription != nil {
		details.Prescription = converter.PrescriptionToResponse(prescription)
		details.Items = converter.PrescriptionItemsToResponses(prescription.Items)
	}

	return details, nil
}

func (u *appointmentUsecase) resolveDoctorID(requested *uuid.UUID) *uuid.UUID {
	if requested != nil && *requested != uuid.Nil {
		return requested
	}
	if u.clinic.DefaultClinicianID != uuid.Nil {
		id := u.clinic.DefaultClinicianID
		return &id
	}
	return nil
}
