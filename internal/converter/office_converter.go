package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// OfficeToResponse converts an Office entity to its DTO
func OfficeToResponse(office *entity.Office) *dto.OfficeResponse {
	if office == nil {
		return nil
	}
	return &dto.OfficeResponse{
		ID:      office.ID,
		Name:    office.Name,
		Address: office.Address,
		Number:  office.Number,
	}
}

// OfficesToResponses converts a slice of Office entities to DTOs
func OfficesToResponses(offices []entity.Office) []dto.OfficeResponse {
	responses := make([]dto.OfficeResponse, len(offices))
	for i, office := range offices {
		responses[i] = *OfficeToResponse(&office)
	}
	return responses
}
