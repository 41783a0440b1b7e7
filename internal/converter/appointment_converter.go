package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its flattened DTO,
// denormalizing the patient, dentist and service display fields when loaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID,
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
		ServiceID: appointment.ServiceID,
		Date:      appointment.Date.Format(entity.DateLayout),
		StartTime: appointment.StartTime,
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}

	if appointment.Patient.UserID != uuid.Nil && appointment.Patient.User.ID != uuid.Nil {
		response.PatientName = appointment.Patient.User.FullName()
	}
	if appointment.Doctor.UserID != uuid.Nil && appointment.Doctor.User.ID != uuid.Nil {
		response.DoctorName = appointment.Doctor.User.FullName()
		response.Specialty = appointment.Doctor.Specialty
	}
	if appointment.Service != nil {
		response.ServiceName = appointment.Service.Name
		price := appointment.Service.Price
		response.ServicePrice = &price
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
