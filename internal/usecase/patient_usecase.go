package usecase

import (
	"context"
	"errors"
	"net/url"
	"time"

	"clinic-management-server/config"
	"clinic-management-server/internal/converter"
	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/domain/entity"
	"clinic-management-server/internal/domain/repository"
	"clinic-management-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrCNSAlreadyExists = errors.New("CNS already registered")
	ErrCPFAlreadyExists = errors.New("CPF already registered")
	// ErrWaitingUnavailable means neither Redis nor the database could
	// answer whether the patient is waiting today.
	ErrWaitingUnavailable = errors.New("waiting status unavailable")
)

const searchResultLimit = 20

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	// Search matches name or CNS; every row carries the effective status
	// (waiting override applied).
	Search(ctx context.Context, query string) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clinic       config.ClinicConfig
	patientRepo  repository.PatientRepository
	waitingQueue *service.WaitingQueueService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinic config.ClinicConfig,
	patientRepo repository.PatientRepository,
	waitingQueue *service.WaitingQueueService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		clinic:       clinic,
		patientRepo:  patientRepo,
		waitingQueue: waitingQueue,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDate
	}

	patient := &entity.Patient{
		Name:           req.Name,
		MotherName:     req.MotherName,
		IndigenousName: req.IndigenousName,
		DateOfBirth:    dob,
		Village:        req.Village,
		Ethnicity:      req.Ethnicity,
		CNS:            req.CNS,
		CPF:            req.CPF,
		ImageURL:       initialsAvatarURL(req.Name),
		Status:         entity.StatusInTreatment,
	}

	if err := u.patientRepo.Create(ctx, u.db, patient); err != nil {
		if isDuplicateKeyError(err, "cns") {
			return nil, ErrCNSAlreadyExists
		}
		if isDuplicateKeyError(err, "cpf") {
			return nil, ErrCPFAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%s, name=%s", patient.ID, patient.Name)

	// A brand-new patient cannot be waiting yet.
	return converter.PatientToResponse(patient, false), nil
}

func (u *patientUsecase) Get(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	waiting, err := u.waitingQueue.IsWaiting(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to resolve waiting status for patient %s: %+v", patientID, err)
		return nil, ErrWaitingUnavailable
	}

	return converter.PatientToResponse(patient, waiting), nil
}

func (u *patientUsecase) Update(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDate
	}

	patient.Name = req.Name
	patient.MotherName = req.MotherName
	patient.IndigenousName = req.IndigenousName
	patient.DateOfBirth = dob
	patient.Village = req.Village
	patient.Ethnicity = req.Ethnicity
	patient.CNS = req.CNS
	patient.CPF = req.CPF
	patient.Allergies = req.Allergies
	patient.Conditions = req.Conditions
	patient.BloodType = req.BloodType

	if err := u.patientRepo.Update(ctx, u.db, patient); err != nil {
		if isDuplicateKeyError(err, "cns") {
			return nil, ErrCNSAlreadyExists
		}
		if isDuplicateKeyError(err, "cpf") {
			return nil, ErrCPFAlreadyExists
		}
		u.log.Warnf("Failed to update patient %s: %+v", patientID, err)
		return nil, err
	}

	waiting, err := u.waitingQueue.IsWaiting(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to resolve waiting status for patient %s: %+v", patientID, err)
		return nil, ErrWaitingUnavailable
	}

	u.log.Infof("Patient updated: id=%s", patientID)
	return converter.PatientToResponse(patient, waiting), nil
}

func (u *patientUsecase) Search(ctx context.Context, query string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.Search(ctx, u.db, query, searchResultLimit)
	if err != nil {
		u.log.Warnf("Failed to search patients with query %q: %+v", query, err)
		return nil, err
	}

	waitingSet, err := u.waitingQueue.WaitingSet(ctx)
	if err != nil {
		u.log.Warnf("Failed to load waiting set: %+v", err)
		return nil, ErrWaitingUnavailable
	}

	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *converter.PatientToResponse(&patients[i], waitingSet[patients[i].ID])
	}

	return &dto.PatientListResponse{
		Patients: responses,
		Total:    len(responses),
	}, nil
}

// initialsAvatarURL builds a placeholder portrait until a photo is
// uploaded.
func initialsAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

func parseDateOfBirth(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	dob, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &dob, nil
}
