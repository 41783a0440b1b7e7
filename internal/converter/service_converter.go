package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to its DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}
	return &dto.ServiceResponse{
		ID:          service.ID,
		Name:        service.Name,
		Description: service.Description,
		Price:       service.Price,
		ImageURL:    service.ImageURL,
	}
}

// ServicesToResponses converts a slice of Service entities to DTOs
func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i, service := range services {
		responses[i] = *ServiceToResponse(&service)
	}
	return responses
}
