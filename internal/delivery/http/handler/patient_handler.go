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

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	patients, err := h.patientUsecase.List(r.Context(), principal)
	if err != nil {
		h.writeError(w, err, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	patient, err := h.patientUsecase.GetByID(r.Context(), principal, id)
	if err != nil {
		h.writeError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrInvalidDateOfBirth:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case usecase.ErrPatientForbidden:
		response.Forbidden(w, err.Error())
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
