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

type ServiceHandler struct {
	serviceUsecase usecase.ServiceUsecase
	validator      *validator.CustomValidator
}

func NewServiceHandler(serviceUsecase usecase.ServiceUsecase, validator *validator.CustomValidator) *ServiceHandler {
	return &ServiceHandler{
		serviceUsecase: serviceUsecase,
		validator:      validator,
	}
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	svc, err := h.serviceUsecase.Create(r.Context(), principal, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create service")
		return
	}

	response.Success(w, http.StatusCreated, "Service created successfully", svc)
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	services, total, err := h.serviceUsecase.List(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list services")
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	response.SuccessWithMeta(w, http.StatusOK, "Services retrieved successfully", services, &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

func (h *ServiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	svc, err := h.serviceUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to get service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service retrieved successfully", svc)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	var req dto.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	svc, err := h.serviceUsecase.Update(r.Context(), principal, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to update service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service updated successfully", svc)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	if err := h.serviceUsecase.Delete(r.Context(), principal, id); err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrServiceInUse:
			response.Conflict(w, "Service is referenced by existing appointments")
		default:
			response.InternalServerError(w, "Failed to delete service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service deleted successfully", nil)
}
