package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// ClinicalRecordToResponse converts a ClinicalRecord entity and its loaded
// treatments to the DTO form
func ClinicalRecordToResponse(record *entity.ClinicalRecord) *dto.ClinicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.ClinicalRecordResponse{
		ID:               record.ID,
		PatientID:        record.PatientID,
		GeneralDiagnosis: record.GeneralDiagnosis,
		Observations:     record.Observations,
		MedicalHistory:   record.MedicalHistory,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}

	if record.Patient.UserID != uuid.Nil && record.Patient.User.ID != uuid.Nil {
		response.PatientName = record.Patient.User.FullName()
	}

	if len(record.Treatments) > 0 {
		response.Treatments = TreatmentsToResponses(record.Treatments)
	}

	return response
}

// ClinicalRecordsToResponses converts a slice of ClinicalRecord entities to DTOs
func ClinicalRecordsToResponses(records []entity.ClinicalRecord) []dto.ClinicalRecordResponse {
	responses := make([]dto.ClinicalRecordResponse, len(records))
	for i, record := range records {
		responses[i] = *ClinicalRecordToResponse(&record)
	}
	return responses
}

// TreatmentToResponse converts a Treatment entity to its DTO
func TreatmentToResponse(treatment *entity.Treatment) *dto.TreatmentResponse {
	if treatment == nil {
		return nil
	}

	response := &dto.TreatmentResponse{
		ID:            treatment.ID,
		RecordID:      treatment.RecordID,
		DoctorID:      treatment.DoctorID,
		AppointmentID: treatment.AppointmentID,
		Type:          treatment.Type,
		Description:   treatment.Description,
		Status:        string(treatment.Status),
		Cost:          treatment.Cost,
		StartDate:     treatment.StartDate.Format(entity.DateLayout),
	}

	if treatment.EndDate != nil {
		endDate := treatment.EndDate.Format(entity.DateLayout)
		response.EndDate = &endDate
	}
	if treatment.Doctor.UserID != uuid.Nil && treatment.Doctor.User.ID != uuid.Nil {
		response.DoctorName = treatment.Doctor.User.FullName()
	}

	return response
}

// TreatmentsToResponses converts a slice of Treatment entities to DTOs
func TreatmentsToResponses(treatments []entity.Treatment) []dto.TreatmentResponse {
	responses := make([]dto.TreatmentResponse, len(treatments))
	for i, treatment := range treatments {
		responses[i] = *TreatmentToResponse(&treatment)
	}
	return responses
}
