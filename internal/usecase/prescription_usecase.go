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
	ErrEmptyPrescription = errors.New("prescription must have items or notes")
	ErrAlreadyFinalized  = errors.New("appointment already has a prescription")
)

const (
	followUpReason      = "Retorno"
	followUpNotes       = "Agendado via prescrição"
	defaultFollowUpTime = "09:00"
)

type PrescriptionUsecase interface {
	// Finalize records the prescription and completes the appointment in one
	// transaction, then books the optional follow-up best-effort.
	Finalize(ctx context.Context, req *dto.FinalizePrescriptionRequest) (*dto.FinalizePrescriptionResponse, error)
	ActiveTreatments(ctx context.Context, patientID uuid.UUID) (*dto.ActiveTreatmentListResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	clinic           config.ClinicConfig
	prescriptionRepo repository.PrescriptionRepository
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	waitingQueue     *service.WaitingQueueService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinic config.ClinicConfig,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	waitingQueue *service.WaitingQueueService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		clinic:           clinic,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		waitingQueue:     waitingQueue,
	}
}

// Finalize is the one write path that completes an appointment. The
// prescription insert, its items, and the Scheduled -> Completed
// transition commit atomically; the follow-up booking runs after the
// commit and reports its failure in the response instead of rolling
// anything back.
func (u *prescriptionUsecase) Finalize(ctx context.Context, req *dto.FinalizePrescriptionRequest) (*dto.FinalizePrescriptionResponse, error) {
	items, err := u.buildItems(req.Items)
	if err != nil {
		return nil, err
	}
	// A notes-only prescription is a valid clinical record; only a
	// prescription with neither items nor notes is rejected.
	if len(items) == 0 && req.Notes == "" {
		return nil, ErrEmptyPrescription
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDForUpdate(ctx, tx, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to lock appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch {
	case appointment.IsCancelled():
		return nil, ErrInvalidTransition
	case appointment.IsCompleted():
		return nil, ErrAlreadyFinalized
	}

	prescription := &entity.Prescription{
		AppointmentID: appointment.ID,
		DoctorID:      u.resolvePrescriber(req.DoctorID, appointment),
		Notes:         req.Notes,
		Diagnosis:     req.Diagnosis,
		Items:         items,
	}

	if err := u.prescriptionRepo.Create(ctx, tx, prescription); err != nil {
		if isDuplicateKeyError(err, "appointment_id") {
			return nil, ErrAlreadyFinalized
		}
		u.log.Warnf("Failed to create prescription for appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	rows, err := u.appointmentRepo.MarkCompleted(ctx, tx, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", appointment.ID, err)
		return nil, err
	}
	if rows == 0 {
		// Lost the race despite the row lock. Roll back rather than
		// attach a prescription to a terminal appointment.
		return nil, ErrAlreadyFinalized
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit prescription for appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	u.log.Infof("Prescription finalized: id=%s, appointment=%s, items=%d", prescription.ID, appointment.ID, len(items))
	u.waitingQueue.Resync(ctx, appointment.PatientID)

	resp := &dto.FinalizePrescriptionResponse{
		PrescriptionID:    prescription.ID,
		AppointmentID:     appointment.ID,
		AppointmentStatus: string(entity.AppointmentStatusCompleted),
	}

	if req.FollowUp != nil {
		u.bookFollowUp(ctx, appointment, req.FollowUp, resp)
	}

	return resp, nil
}

// bookFollowUp runs outside the finalize transaction. Its only failure
// mode is a populated FollowUpError on the response: an unbookable
// follow-up, including an unparseable date, never undoes the committed
// prescription.
func (u *prescriptionUsecase) bookFollowUp(ctx context.Context, origin *entity.Appointment, fu *dto.FollowUpRequest, resp *dto.FinalizePrescriptionResponse) {
	date, err := resolveFollowUpDate(fu, u.clinic.Location)
	if err != nil {
		u.log.Warnf("Failed to resolve follow-up date for appointment %s: %+v", origin.ID, err)
		resp.FollowUpError = "invalid follow-up date, use YYYY-MM-DD"
		return
	}

	followUp := &entity.Appointment{
		PatientID: origin.PatientID,
		DoctorID:  origin.DoctorID,
		Date:      date,
		Reason:    followUpReason,
		Notes:     followUpNotes,
		Status:    entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(ctx, u.db, followUp); err != nil {
		u.log.Warnf("Failed to book follow-up for appointment %s: %+v", origin.ID, err)
		resp.FollowUpError = "follow-up appointment could not be booked"
		return
	}

	u.waitingQueue.Resync(ctx, origin.PatientID)
	u.log.Infof("Follow-up booked: id=%s, patient=%s, date=%s", followUp.ID, followUp.PatientID, date.Format(time.RFC3339))
	resp.FollowUpAppointmentID = &followUp.ID
}

func (u *prescriptionUsecase) ActiveTreatments(ctx context.Context, patientID uuid.UUID) (*dto.ActiveTreatmentListResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	treatments, err := u.prescriptionRepo.FindActiveTreatmentsByPatient(ctx, u.db, patientID, time.Now().In(u.clinic.Location))
	if err != nil {
		u.log.Warnf("Failed to list active treatments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.ActiveTreatmentListResponse{
		Treatments: converter.ActiveTreatmentsToResponses(treatments),
		Total:      len(treatments),
	}, nil
}

// buildItems maps the request lines to entities. The open-ended flag is
// computed here, once, from the free-text duration; after this point only
// the boolean matters.
func (u *prescriptionUsecase) buildItems(reqs []dto.PrescriptionItemRequest) ([]entity.PrescriptionItem, error) {
	items := make([]entity.PrescriptionItem, 0, len(reqs))
	for _, r := range reqs {
		item := entity.PrescriptionItem{
			Type:          entity.PrescriptionItemType(r.Type),
			Name:          r.Name,
			Dosage:        r.Dosage,
			Frequency:     r.Frequency,
			Duration:      r.Duration,
			Ongoing:       entity.IsContinuousDuration(r.Duration),
			CatalogItemID: r.CatalogItemID,
		}
		if r.EndDate != "" {
			endDate, err := clock.ResolveVisitDate(r.EndDate, u.clinic.Location, time.Now)
			if err != nil {
				return nil, ErrInvalidDate
			}
			item.EndDate = &endDate
		}
		items = append(items, item)
	}
	return items, nil
}

func (u *prescriptionUsecase) resolvePrescriber(requested *uuid.UUID, appointment *entity.Appointment) *uuid.UUID {
	if requested != nil && *requested != uuid.Nil {
		return requested
	}
	return appointment.DoctorID
}

// resolveFollowUpDate combines a bare date with an optional HH:MM wall
// time in the clinic zone. Morning default keeps follow-ups at the start
// of the clinic day.
func resolveFollowUpDate(req *dto.FollowUpRequest, loc *time.Location) (time.Time, error) {
	t := req.Time
	if t == "" {
		t = defaultFollowUpTime
	}
	return time.ParseInLocation("2006-01-02 15:04", req.Date+" "+t, loc)
}
