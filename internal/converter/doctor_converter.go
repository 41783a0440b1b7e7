package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// DoctorToResponse converts a DentistProfile with its user loaded to the
// directory DTO
func DoctorToResponse(profile *entity.DentistProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}
	return &dto.DoctorResponse{
		UserID:        profile.UserID,
		FullName:      profile.User.FullName(),
		Specialty:     profile.Specialty,
		LicenseNumber: profile.LicenseNumber,
		Bio:           profile.Bio,
	}
}

// DoctorsToResponses converts a slice of DentistProfile entities to DTOs
func DoctorsToResponses(profiles []entity.DentistProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		responses[i] = *DoctorToResponse(&profile)
	}
	return responses
}
