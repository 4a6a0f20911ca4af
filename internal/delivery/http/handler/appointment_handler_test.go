package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/usecase"
	"clinic-management-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type stubAppointmentUsecase struct {
	createResp *dto.AppointmentResponse
	createErr  error
	updateErr  error
	rangeResp  *dto.AgendaResponse
	rangeErr   error
	gotUpdate  *dto.UpdateAppointmentRequest
}

func (s *stubAppointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createResp, nil
}

func (s *stubAppointmentUsecase) Update(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) error {
	s.gotUpdate = req
	return s.updateErr
}

func (s *stubAppointmentUsecase) ListByRange(ctx context.Context, startDate, endDate string) (*dto.AgendaResponse, error) {
	if s.rangeErr != nil {
		return nil, s.rangeErr
	}
	return s.rangeResp, nil
}

func (s *stubAppointmentUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentHistoryListResponse, error) {
	return &dto.AppointmentHistoryListResponse{}, nil
}

func (s *stubAppointmentUsecase) GetDetails(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentDetailsResponse, error) {
	return &dto.AppointmentDetailsResponse{}, nil
}

func TestCreateAppointment(t *testing.T) {
	patientID := uuid.New()

	t.Run("created appointment is scheduled", func(t *testing.T) {
		stub := &stubAppointmentUsecase{
			createResp: &dto.AppointmentResponse{
				ID:        uuid.New(),
				PatientID: patientID,
				Status:    "Scheduled",
			},
		}
		h := NewAppointmentHandler(stub, validator.NewValidator())

		body := `{"patient_id":"` + patientID.String() + `","date":"2026-09-10","reason":"Consulta"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.CreateAppointment(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Data dto.AppointmentResponse `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Data.Status != "Scheduled" {
			t.Errorf("expected Scheduled, got %s", resp.Data.Status)
		}
	})

	t.Run("unknown patient returns 404", func(t *testing.T) {
		stub := &stubAppointmentUsecase{createErr: usecase.ErrPatientNotFound}
		h := NewAppointmentHandler(stub, validator.NewValidator())

		body := `{"patient_id":"` + patientID.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.CreateAppointment(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("malformed date returns 400", func(t *testing.T) {
		stub := &stubAppointmentUsecase{createErr: usecase.ErrInvalidDate}
		h := NewAppointmentHandler(stub, validator.NewValidator())

		body := `{"patient_id":"` + patientID.String() + `","date":"tomorrow"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.CreateAppointment(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestUpdateAppointment(t *testing.T) {
	appointmentID := uuid.New()

	patchRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+appointmentID.String(), strings.NewReader(body))
		return mux.SetURLVars(req, map[string]string{"id": appointmentID.String()})
	}

	t.Run("cancel succeeds", func(t *testing.T) {
		stub := &stubAppointmentUsecase{}
		h := NewAppointmentHandler(stub, validator.NewValidator())

		rec := httptest.NewRecorder()
		h.UpdateAppointment(rec, patchRequest(`{"status":"Cancelled"}`))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.gotUpdate == nil || stub.gotUpdate.Status != "Cancelled" {
			t.Error("cancel did not reach the usecase")
		}
	})

	t.Run("terminal appointment returns 409", func(t *testing.T) {
		stub := &stubAppointmentUsecase{updateErr: usecase.ErrInvalidTransition}
		h := NewAppointmentHandler(stub, validator.NewValidator())

		rec := httptest.NewRecorder()
		h.UpdateAppointment(rec, patchRequest(`{"status":"Cancelled"}`))

		if rec.Code != http.StatusConflict {
			t.Errorf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("completed is not an acceptable target status", func(t *testing.T) {
		stub := &stubAppointmentUsecase{}
		h := NewAppointmentHandler(stub, validator.NewValidator())

		rec := httptest.NewRecorder()
		h.UpdateAppointment(rec, patchRequest(`{"status":"Completed"}`))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if stub.gotUpdate != nil {
			t.Error("invalid status should not reach the usecase")
		}
	})

	t.Run("invalid appointment ID returns 400", func(t *testing.T) {
		h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/not-a-uuid", strings.NewReader(`{}`))
		req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
		rec := httptest.NewRecorder()
		h.UpdateAppointment(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetAppointmentsByRange(t *testing.T) {
	t.Run("missing range parameters return 400", func(t *testing.T) {
		h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
		rec := httptest.NewRecorder()
		h.GetAppointmentsByRange(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("agenda rows are returned", func(t *testing.T) {
		stub := &stubAppointmentUsecase{
			rangeResp: &dto.AgendaResponse{
				Appointments: []dto.AgendaEntryResponse{
					{ID: uuid.New(), PatientName: "Maria", Status: "Scheduled"},
				},
				Total: 1,
			},
		}
		h := NewAppointmentHandler(stub, validator.NewValidator())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments?start=2026-09-01&end=2026-09-30", nil)
		rec := httptest.NewRecorder()
		h.GetAppointmentsByRange(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp struct {
			Data dto.AgendaResponse `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Data.Total != 1 {
			t.Errorf("expected 1 appointment, got %d", resp.Data.Total)
		}
	})
}
