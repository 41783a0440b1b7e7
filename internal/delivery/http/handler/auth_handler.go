package handler

import (
	"encoding/json"
	"net/http"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		case usecase.ErrAccountDisabled:
			response.Forbidden(w, "Account is disabled")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.RegisterPatient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailTaken:
			response.Conflict(w, "Email is already registered")
		case usecase.ErrInvalidDateOfBirth:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to register")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Registration successful", user)
}

func (h *AuthHandler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.RegisterDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.RegisterDoctor(r.Context(), principal, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailTaken:
			response.Conflict(w, "Email is already registered")
		case usecase.ErrLicenseNumberTaken:
			response.Conflict(w, "License number is already registered")
		default:
			response.InternalServerError(w, "Failed to register dentist")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Dentist registered successfully", user)
}

func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.RefreshToken(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidRefreshToken:
			response.Forbidden(w, "Invalid refresh token")
		default:
			response.InternalServerError(w, "Failed to refresh token")
		}
		return
	}

	response.Success(w, http.StatusOK, "Token refreshed successfully", token)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), principal); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), principal)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}
