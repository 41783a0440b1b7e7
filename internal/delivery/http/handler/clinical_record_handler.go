package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ClinicalRecordHandler struct {
	recordUsecase usecase.ClinicalRecordUsecase
	validator     *validator.CustomValidator
}

func NewClinicalRecordHandler(recordUsecase usecase.ClinicalRecordUsecase, validator *validator.CustomValidator) *ClinicalRecordHandler {
	return &ClinicalRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

func (h *ClinicalRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateClinicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create clinical record")
		return
	}

	response.Success(w, http.StatusCreated, "Clinical record created successfully", record)
}

func (h *ClinicalRecordHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["pacienteId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	records, err := h.recordUsecase.ListByPatient(r.Context(), principal, patientID)
	if err != nil {
		h.writeError(w, err, "Failed to list clinical records")
		return
	}

	response.Success(w, http.StatusOK, "Clinical records retrieved successfully", records)
}

func (h *ClinicalRecordHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	record, err := h.recordUsecase.GetByID(r.Context(), principal, id)
	if err != nil {
		h.writeError(w, err, "Failed to get clinical record")
		return
	}

	response.Success(w, http.StatusOK, "Clinical record retrieved successfully", record)
}

func (h *ClinicalRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	var req dto.UpdateClinicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	record, err := h.recordUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update clinical record")
		return
	}

	response.Success(w, http.StatusOK, "Clinical record updated successfully", record)
}

func (h *ClinicalRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	if err := h.recordUsecase.Delete(r.Context(), principal, id); err != nil {
		h.writeError(w, err, "Failed to delete clinical record")
		return
	}

	response.Success(w, http.StatusOK, "Clinical record deleted successfully", nil)
}

func (h *ClinicalRecordHandler) AddTreatment(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	recordID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	var req dto.CreateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	treatment, err := h.recordUsecase.AddTreatment(r.Context(), principal, recordID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to add treatment")
		return
	}

	response.Success(w, http.StatusCreated, "Treatment added successfully", treatment)
}

// ExportPDF streams the patient's clinical history as a downloadable PDF.
func (h *ClinicalRecordHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["pacienteId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=historial_%s.pdf", patientID))

	if err := h.recordUsecase.ExportHistoryPDF(r.Context(), principal, patientID, w); err != nil {
		// The usecase validates access before writing any bytes
		w.Header().Del("Content-Disposition")
		h.writeError(w, err, "Failed to export clinical history")
		return
	}
}

func (h *ClinicalRecordHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrRecordNotFound:
		response.NotFound(w, "Clinical record not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrRecordForbidden:
		response.Forbidden(w, err.Error())
	case usecase.ErrInvalidTreatmentDate:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
