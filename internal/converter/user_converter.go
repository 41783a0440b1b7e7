package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// UserToResponse converts a User entity to its DTO, including any loaded profile
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}

	if user.DentistProfile != nil {
		response.DentistProfile = &dto.DentistProfileResponse{
			Specialty:     user.DentistProfile.Specialty,
			LicenseNumber: user.DentistProfile.LicenseNumber,
			Bio:           user.DentistProfile.Bio,
		}
	}
	if user.PatientProfile != nil {
		response.PatientProfile = &dto.PatientProfileResponse{
			DateOfBirth: user.PatientProfile.DateOfBirth.Format(entity.DateLayout),
			Phone:       user.PatientProfile.Phone,
			Gender:      user.PatientProfile.Gender,
		}
	}

	return response
}
