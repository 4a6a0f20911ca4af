package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-management-server/config"
	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/domain/entity"
	"clinic-management-server/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeAppointmentRepo drives the finalize transaction without SQL: the
// row lock and conditional update outcomes are configured per test.
type fakeAppointmentRepo struct {
	appointment    *entity.Appointment
	markRows       int64
	createErr      error
	created        []*entity.Appointment
	scheduledToday int64
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	appointment.ID = uuid.New()
	r.created = append(r.created, appointment)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return r.appointment, nil
}

func (r *fakeAppointmentRepo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return r.appointment, nil
}

func (r *fakeAppointmentRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindByDateRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) UpdateScheduledFields(ctx context.Context, db *gorm.DB, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	return 0, nil
}

func (r *fakeAppointmentRepo) MarkCompleted(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	if r.markRows > 0 {
		r.appointment.Status = entity.AppointmentStatusCompleted
		r.scheduledToday = 0
	}
	return r.markRows, nil
}

func (r *fakeAppointmentRepo) CountScheduledInRange(ctx context.Context, db *gorm.DB, patientID uuid.UUID, start, end time.Time) (int64, error) {
	return r.scheduledToday, nil
}

func (r *fakeAppointmentRepo) FindScheduledPatientIDsInRange(ctx context.Context, db *gorm.DB, start, end time.Time, limit, offset int) ([]uuid.UUID, error) {
	return nil, nil
}

type fakePrescriptionRepo struct {
	created []*entity.Prescription
}

func (r *fakePrescriptionRepo) Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error {
	prescription.ID = uuid.New()
	r.created = append(r.created, prescription)
	return nil
}

func (r *fakePrescriptionRepo) FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.Prescription, error) {
	return nil, nil
}

func (r *fakePrescriptionRepo) FindActiveTreatmentsByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, day time.Time) ([]entity.ActiveTreatment, error) {
	return nil, nil
}

type fakePatientRepo struct{}

func (r *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return &entity.Patient{ID: id}, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return nil
}

func (r *fakePatientRepo) Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]entity.Patient, error) {
	return nil, nil
}

type finalizeFixture struct {
	usecase         PrescriptionUsecase
	appointmentRepo *fakeAppointmentRepo
	prescRepo       *fakePrescriptionRepo
	mock            sqlmock.Sqlmock
	appointmentID   uuid.UUID
	patientID       uuid.UUID
}

func newFinalizeFixture(t *testing.T, status entity.AppointmentStatus, markRows int64) *finalizeFixture {
	t.Helper()

	mockConn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() { mockConn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockConn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	appointmentID := uuid.New()
	patientID := uuid.New()

	appointmentRepo := &fakeAppointmentRepo{
		appointment: &entity.Appointment{
			ID:        appointmentID,
			PatientID: patientID,
			Status:    status,
		},
		markRows:       markRows,
		scheduledToday: 1,
	}
	prescRepo := &fakePrescriptionRepo{}

	// Unreachable Redis exercises the best-effort write path; the queue
	// falls back to the repository.
	waitingQueue := service.NewWaitingQueueService(
		db,
		redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}),
		log,
		time.UTC,
		appointmentRepo,
	)

	u := NewPrescriptionUsecase(
		db,
		log,
		config.ClinicConfig{Location: time.UTC},
		prescRepo,
		appointmentRepo,
		&fakePatientRepo{},
		waitingQueue,
	)

	return &finalizeFixture{
		usecase:         u,
		appointmentRepo: appointmentRepo,
		prescRepo:       prescRepo,
		mock:            mock,
		appointmentID:   appointmentID,
		patientID:       patientID,
	}
}

func TestFinalize(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled appointment is completed atomically", func(t *testing.T) {
		f := newFinalizeFixture(t, entity.AppointmentStatusScheduled, 1)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.usecase.Finalize(ctx, &dto.FinalizePrescriptionRequest{
			AppointmentID: f.appointmentID,
			Items: []dto.PrescriptionItemRequest{
				{Type: "Traditional", Name: "Chá de Guaco", Duration: "7 dias"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.AppointmentStatus != string(entity.AppointmentStatusCompleted) {
			t.Errorf("expected Completed, got %s", resp.AppointmentStatus)
		}
		if len(f.prescRepo.created) != 1 {
			t.Fatalf("expected 1 prescription, got %d", len(f.prescRepo.created))
		}
		if f.prescRepo.created[0].AppointmentID != f.appointmentID {
			t.Error("prescription not attached to the appointment")
		}
		if err := f.mock.ExpectationsWereMet(); err != nil {
			t.Errorf("transaction expectations: %v", err)
		}
	})

	t.Run("notes-only prescription is accepted", func(t *testing.T) {
		f := newFinalizeFixture(t, entity.AppointmentStatusScheduled, 1)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.usecase.Finalize(ctx, &dto.FinalizePrescriptionRequest{
			AppointmentID: f.appointmentID,
			Notes:         "Repouso e hidratação",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.AppointmentStatus != string(entity.AppointmentStatusCompleted) {
			t.Errorf("expected Completed, got %s", resp.AppointmentStatus)
		}
		if len(f.prescRepo.created) != 1 {
			t.Fatalf("expected 1 prescription, got %d", len(f.prescRepo.created))
		}
		if len(f.prescRepo.created[0].Items) != 0 {
			t.Errorf("expected no items, got %d", len(f.prescRepo.created[0].Items))
		}
	})

	t.Run("neither items nor notes is rejected", func(t *testing.T) {
		f := newFinalizeFixture(t, entity.AppointmentStatusScheduled, 1)

		_, err := f.usecase.Finalize(ctx, &dto.FinalizePrescriptionRequest{
			AppointmentID: f.appointmentID,
		})
		if err != ErrEmptyPrescription {
			t.Errorf("expected ErrEmptyPrescription, got %v", err)
		}
		if len(f.prescRepo.created) != 0 {
			t.Error("no prescription should be written")
		}
	})

	t.Run("cancelled appointment rejects finalization", func(t *testing.T) {
		f := newFinalizeFixture(t, entity.AppointmentStatusCancelled, 0)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.usecase.Finalize(ctx, &dto.FinalizePrescriptionRequest{
			AppointmentID: f.appointmentID,
			Items:         []dto.PrescriptionItemRequest{{Type: "Allopathic", Name: "Dipirona"}},
		})
		if err != ErrInvalidTransition {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
		if len(f.prescRepo.created) != 0 {
			t.Error("no prescription should be written")
		}
		if err := f.mock.ExpectationsWereMet(); err != nil {
			t.Errorf("transaction expectations: %v", err)
		}
	})

	t.Run("completed appointment rejects a second finalization", func(t *testing.T) {
		f := newFinalizeFixture(t, entity.AppointmentStatusCompleted, 0)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.usecase.Finalize(ctx, &dto.FinalizePrescriptionRequest{
			AppointmentID: f.appointmentID,
			Items:         []dto.PrescriptionItemRequest{{Type: "Allopathic", Name: "Dipirona"}},
		})
		if err != ErrAlreadyFinalized {
			t.Errorf("expected ErrAlreadyFinalized, got %v", err)
		}
	})

	t.Run("lost completion race rolls the prescription back", func(t *testing.T) {
		f := newFinalizeFixture(t, entity.AppointmentStatusScheduled, 0)
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()

		_, err := f.usecase.Finalize(ctx, &dto.FinalizePrescriptionRequest{
			AppointmentID: f.appointmentID,
			Items:         []dto.PrescriptionItemRequest{{Type: "Allopathic", Name: "Dipirona"}},
		})
		if err != ErrAlreadyFinalized {
			t.Errorf("expected ErrAlreadyFinalized, got %v", err)
		}
		if err := f.mock.ExpectationsWereMet(); err != nil {
			t.Errorf("transaction expectations: %v", err)
		}
	})

	t.Run("unparseable follow-up date does not undo the prescription", func(t *testing.T) {
		f := newFinalizeFixture(t, entity.AppointmentStatusScheduled, 1)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.usecase.Finalize(ctx, &dto.FinalizePrescriptionRequest{
			AppointmentID: f.appointmentID,
			Items:         []dto.PrescriptionItemRequest{{Type: "Traditional", Name: "Chá de Guaco"}},
			FollowUp:      &dto.FollowUpRequest{Date: "not-a-date"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.AppointmentStatus != string(entity.AppointmentStatusCompleted) {
			t.Errorf("expected Completed, got %s", resp.AppointmentStatus)
		}
		if len(f.prescRepo.created) != 1 {
			t.Errorf("expected committed prescription, got %d", len(f.prescRepo.created))
		}
		if resp.FollowUpError == "" {
			t.Error("expected follow_up_error to be set")
		}
		if resp.FollowUpAppointmentID != nil {
			t.Error("expected no follow-up appointment")
		}
		if len(f.appointmentRepo.created) != 0 {
			t.Error("no follow-up appointment should be booked")
		}
	})

	t.Run("follow-up books a return visit after commit", func(t *testing.T) {
		f := newFinalizeFixture(t, entity.AppointmentStatusScheduled, 1)
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.usecase.Finalize(ctx, &dto.FinalizePrescriptionRequest{
			AppointmentID: f.appointmentID,
			Items:         []dto.PrescriptionItemRequest{{Type: "Traditional", Name: "Chá de Guaco"}},
			FollowUp:      &dto.FollowUpRequest{Date: "2026-10-01"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.FollowUpAppointmentID == nil {
			t.Fatal("expected follow-up appointment ID")
		}
		if len(f.appointmentRepo.created) != 1 {
			t.Fatalf("expected 1 follow-up, got %d", len(f.appointmentRepo.created))
		}
		followUp := f.appointmentRepo.created[0]
		if followUp.Reason != "Retorno" {
			t.Errorf("expected reason Retorno, got %q", followUp.Reason)
		}
		if followUp.PatientID != f.patientID {
			t.Error("follow-up booked for the wrong patient")
		}
		if followUp.Status != entity.AppointmentStatusScheduled {
			t.Errorf("expected Scheduled follow-up, got %s", followUp.Status)
		}
		if followUp.Date.Hour() != 9 {
			t.Errorf("expected 09:00 default, got %02d:00", followUp.Date.Hour())
		}
	})

	t.Run("follow-up booking failure is reported, not returned", func(t *testing.T) {
		f := newFinalizeFixture(t, entity.AppointmentStatusScheduled, 1)
		f.appointmentRepo.createErr = context.DeadlineExceeded
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()

		resp, err := f.usecase.Finalize(ctx, &dto.FinalizePrescriptionRequest{
			AppointmentID: f.appointmentID,
			Items:         []dto.PrescriptionItemRequest{{Type: "Traditional", Name: "Chá de Guaco"}},
			FollowUp:      &dto.FollowUpRequest{Date: "2026-10-01"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.FollowUpError == "" {
			t.Error("expected follow_up_error to be set")
		}
		if len(f.prescRepo.created) != 1 {
			t.Error("prescription should stay committed")
		}
	})
}
