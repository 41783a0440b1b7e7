package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// PatientToResponse converts a PatientProfile with its user loaded to the
// directory DTO
func PatientToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}
	return &dto.PatientResponse{
		UserID:      profile.UserID,
		FullName:    profile.User.FullName(),
		Email:       profile.User.Email,
		DateOfBirth: profile.DateOfBirth.Format(entity.DateLayout),
		Phone:       profile.Phone,
		Gender:      profile.Gender,
		IsActive:    profile.User.IsActive,
	}
}

// PatientsToResponses converts a slice of PatientProfile entities to DTOs
func PatientsToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(profiles))
	for i, profile := range profiles {
		responses[i] = *PatientToResponse(&profile)
	}
	return responses
}
