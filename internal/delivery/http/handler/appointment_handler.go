package handler

import (
	"encoding/json"
	"net/http"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), principal)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), principal, id)
	if err != nil {
		h.writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), principal, id); err != nil {
		h.writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.HardDelete(r.Context(), principal, id); err != nil {
		h.writeError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrMissingFields,
		usecase.ErrInvalidDateFormat,
		usecase.ErrInvalidTimeFormat,
		usecase.ErrPastDate,
		usecase.ErrPatientIDRequired:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case usecase.ErrSlotTaken:
		response.Conflict(w, err.Error())
	case usecase.ErrAppointmentForbidden:
		response.Forbidden(w, err.Error())
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrServiceNotFound:
		response.NotFound(w, "Service not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
