package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/gorilla/mux"
)

type OfficeHandler struct {
	officeUsecase usecase.OfficeUsecase
	validator     *validator.CustomValidator
}

func NewOfficeHandler(officeUsecase usecase.OfficeUsecase, validator *validator.CustomValidator) *OfficeHandler {
	return &OfficeHandler{
		officeUsecase: officeUsecase,
		validator:     validator,
	}
}

func (h *OfficeHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateOfficeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	office, err := h.officeUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create office")
		return
	}

	response.Success(w, http.StatusCreated, "Office created successfully", office)
}

func (h *OfficeHandler) List(w http.ResponseWriter, r *http.Request) {
	offices, err := h.officeUsecase.List(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		response.InternalServerError(w, "Failed to list offices")
		return
	}

	response.Success(w, http.StatusOK, "Offices retrieved successfully", offices)
}

func (h *OfficeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid office ID", nil)
		return
	}

	office, err := h.officeUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrOfficeNotFound:
			response.NotFound(w, "Office not found")
		default:
			response.InternalServerError(w, "Failed to get office")
		}
		return
	}

	response.Success(w, http.StatusOK, "Office retrieved successfully", office)
}

func (h *OfficeHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid office ID", nil)
		return
	}

	var req dto.UpdateOfficeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	office, err := h.officeUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrOfficeNotFound:
			response.NotFound(w, "Office not found")
		default:
			response.InternalServerError(w, "Failed to update office")
		}
		return
	}

	response.Success(w, http.StatusOK, "Office updated successfully", office)
}

func (h *OfficeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid office ID", nil)
		return
	}

	if err := h.officeUsecase.Delete(r.Context(), principal, id); err != nil {
		switch err {
		case usecase.ErrOfficeNotFound:
			response.NotFound(w, "Office not found")
		default:
			response.InternalServerError(w, "Failed to delete office")
		}
		return
	}

	response.Success(w, http.StatusOK, "Office deleted successfully", nil)
}
