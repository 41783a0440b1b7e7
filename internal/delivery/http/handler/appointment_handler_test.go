package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type stubAppointmentUsecase struct {
	err error
}

func (s *stubAppointmentUsecase) Create(context.Context, entity.Principal, *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AppointmentResponse{ID: uuid.New()}, nil
}

func (s *stubAppointmentUsecase) List(context.Context, entity.Principal) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}}, s.err
}

func (s *stubAppointmentUsecase) GetByID(context.Context, entity.Principal, uuid.UUID) (*dto.AppointmentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AppointmentResponse{}, nil
}

func (s *stubAppointmentUsecase) Update(context.Context, entity.Principal, uuid.UUID, *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AppointmentResponse{}, nil
}

func (s *stubAppointmentUsecase) Cancel(context.Context, entity.Principal, uuid.UUID) error {
	return s.err
}

func (s *stubAppointmentUsecase) HardDelete(context.Context, entity.Principal, uuid.UUID) error {
	return s.err
}

func requestWithPrincipal(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	principal := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	return req.WithContext(context.WithValue(req.Context(), middleware.PrincipalKey, principal))
}

func TestAppointmentHandlerErrorMapping(t *testing.T) {
	doctorID := uuid.New()
	body := `{"doctor_id":"` + doctorID.String() + `","service_id":1,"date":"2030-01-01","start_time":"10:00"}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot taken maps to conflict", err: usecase.ErrSlotTaken, wantStatus: http.StatusConflict},
		{name: "past date maps to bad request", err: usecase.ErrPastDate, wantStatus: http.StatusBadRequest},
		{name: "bad date format maps to bad request", err: usecase.ErrInvalidDateFormat, wantStatus: http.StatusBadRequest},
		{name: "missing patient maps to bad request", err: usecase.ErrPatientIDRequired, wantStatus: http.StatusBadRequest},
		{name: "unknown doctor maps to not found", err: usecase.ErrDoctorNotFound, wantStatus: http.StatusNotFound},
		{name: "success maps to created", err: nil, wantStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentUsecase{err: tt.err}, validator.NewValidator())
			rec := httptest.NewRecorder()

			h.Create(rec, requestWithPrincipal(http.MethodPost, "/api/v1/citas", body))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAppointmentHandlerGetByID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "invalid uuid", id: "abc", wantStatus: http.StatusBadRequest},
		{name: "forbidden", id: uuid.NewString(), err: usecase.ErrAppointmentForbidden, wantStatus: http.StatusForbidden},
		{name: "not found", id: uuid.NewString(), err: usecase.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "found", id: uuid.NewString(), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentUsecase{err: tt.err}, validator.NewValidator())
			rec := httptest.NewRecorder()

			req := requestWithPrincipal(http.MethodGet, "/api/v1/citas/"+tt.id, "")
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})

			h.GetByID(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAppointmentHandlerRejectsInvalidBody(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{}, validator.NewValidator())

	t.Run("malformed json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Create(rec, requestWithPrincipal(http.MethodPost, "/api/v1/citas", "{not json"))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Create(rec, requestWithPrincipal(http.MethodPost, "/api/v1/citas", "{}"))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
