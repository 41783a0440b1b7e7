package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterPatientRequest represents a patient self-registration payload
type RegisterPatientRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=2,max=100"`
	LastName    string `json:"last_name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DateOfBirth string `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Gender      string `json:"gender" validate:"omitempty,oneof=masculino femenino otro"`
}

// RegisterDoctorRequest represents an admin-driven dentist registration payload
type RegisterDoctorRequest struct {
	FirstName     string `json:"first_name" validate:"required,min=2,max=100"`
	LastName      string `json:"last_name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Specialty     string `json:"specialty" validate:"required,max=100"`
	LicenseNumber string `json:"license_number" validate:"required,max=50"`
	Bio           string `json:"bio" validate:"omitempty"`
}

// RefreshTokenRequest represents the token refresh payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse represents the issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserResponse represents account data returned to clients
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	DentistProfile *DentistProfileResponse `json:"dentist_profile,omitempty"`
	PatientProfile *PatientProfileResponse `json:"patient_profile,omitempty"`
}

// DentistProfileResponse represents dentist profile data
type DentistProfileResponse struct {
	Specialty     string `json:"specialty"`
	LicenseNumber string `json:"license_number"`
	Bio           string `json:"bio,omitempty"`
}

// PatientProfileResponse represents patient profile data
type PatientProfileResponse struct {
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// LoginResponse bundles the authenticated user with its token pair
type LoginResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}
