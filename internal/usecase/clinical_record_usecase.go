package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrRecordNotFound       = errors.New("clinical record not found")
	ErrRecordForbidden      = errors.New("you do not have access to this clinical record")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrInvalidTreatmentDate = errors.New("treatment dates must use the YYYY-MM-DD format")
)

// ClinicalRecordUsecase manages patient clinical histories and the treatments
// attached to them. Dentists and admins write; patients read their own.
type ClinicalRecordUsecase interface {
	Create(ctx context.Context, principal entity.Principal, req *dto.CreateClinicalRecordRequest) (*dto.ClinicalRecordResponse, error)
	ListByPatient(ctx context.Context, principal entity.Principal, patientID uuid.UUID) ([]dto.ClinicalRecordResponse, error)
	GetByID(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.ClinicalRecordResponse, error)
	Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateClinicalRecordRequest) (*dto.ClinicalRecordResponse, error)
	Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error
	AddTreatment(ctx context.Context, principal entity.Principal, recordID uuid.UUID, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error)
	ExportHistoryPDF(ctx context.Context, principal entity.Principal, patientID uuid.UUID, w io.Writer) error
}

type clinicalRecordUsecase struct {
	log         *logrus.Logger
	recordRepo  repository.ClinicalRecordRepository
	treatRepo   repository.TreatmentRepository
	patientRepo repository.PatientProfileRepository
	pdf         *service.HistoryPDF
	audit       service.AuditService
}

func NewClinicalRecordUsecase(
	log *logrus.Logger,
	recordRepo repository.ClinicalRecordRepository,
	treatRepo repository.TreatmentRepository,
	patientRepo repository.PatientProfileRepository,
	pdf *service.HistoryPDF,
	audit service.AuditService,
) ClinicalRecordUsecase {
	return &clinicalRecordUsecase{
		log:         log,
		recordRepo:  recordRepo,
		treatRepo:   treatRepo,
		patientRepo: patientRepo,
		pdf:         pdf,
		audit:       audit,
	}
}

func (u *clinicalRecordUsecase) Create(ctx context.Context, principal entity.Principal, req *dto.CreateClinicalRecordRequest) (*dto.ClinicalRecordResponse, error) {
	patient, err := u.patientRepo.FindByUserID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	record := &entity.ClinicalRecord{
		PatientID:        req.PatientID,
		GeneralDiagnosis: req.GeneralDiagnosis,
		Observations:     req.Observations,
		MedicalHistory:   req.MedicalHistory,
	}

	if err := u.recordRepo.Create(ctx, record); err != nil {
		u.log.Warnf("Failed to create clinical record: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionRecordCreate, "clinical_record", record.ID.String(), nil, record)

	return converter.ClinicalRecordToResponse(record), nil
}

// ListByPatient returns a patient's records oldest first. Patients may only
// list their own history.
func (u *clinicalRecordUsecase) ListByPatient(ctx context.Context, principal entity.Principal, patientID uuid.UUID) ([]dto.ClinicalRecordResponse, error) {
	if principal.Role == entity.RolePatient && patientID != principal.ID {
		return nil, ErrRecordForbidden
	}

	records, err := u.recordRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list records for patient %s: %+v", patientID, err)
		return nil, err
	}

	return converter.ClinicalRecordsToResponses(records), nil
}

func (u *clinicalRecordUsecase) GetByID(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.ClinicalRecordResponse, error) {
	record, err := u.findVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return converter.ClinicalRecordToResponse(record), nil
}

func (u *clinicalRecordUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateClinicalRecordRequest) (*dto.ClinicalRecordResponse, error) {
	record, err := u.findVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if principal.Role == entity.RolePatient {
		return nil, ErrRecordForbidden
	}

	if req.GeneralDiagnosis != nil {
		record.GeneralDiagnosis = *req.GeneralDiagnosis
	}
	if req.Observations != nil {
		record.Observations = *req.Observations
	}
	if req.MedicalHistory != nil {
		record.MedicalHistory = *req.MedicalHistory
	}

	if err := u.recordRepo.Update(ctx, record); err != nil {
		u.log.Warnf("Failed to update clinical record %s: %+v", id, err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionRecordUpdate, "clinical_record", id.String(), nil, record)

	return converter.ClinicalRecordToResponse(record), nil
}

func (u *clinicalRecordUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	record, err := u.recordRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find clinical record %s: %+v", id, err)
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}

	if err := u.recordRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete clinical record %s: %+v", id, err)
		return err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionRecordDelete, "clinical_record", id.String(), record, nil)

	return nil
}

// AddTreatment attaches a treatment to a record. The acting dentist is
// recorded as the performer; admins acting here are also recorded as such.
func (u *clinicalRecordUsecase) AddTreatment(ctx context.Context, principal entity.Principal, recordID uuid.UUID, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	record, err := u.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		u.log.Warnf("Failed to find clinical record %s: %+v", recordID, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	startDate, err := time.ParseInLocation(entity.DateLayout, req.StartDate, time.Local)
	if err != nil {
		return nil, ErrInvalidTreatmentDate
	}

	treatment := &entity.Treatment{
		RecordID:      recordID,
		DoctorID:      principal.ID,
		AppointmentID: req.AppointmentID,
		Type:          req.Type,
		Description:   req.Description,
		Status:        entity.TreatmentInProgress,
		Cost:          req.Cost,
		StartDate:     startDate,
	}

	if err := u.treatRepo.Create(ctx, treatment); err != nil {
		if isForeignKeyError(err) {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to create treatment: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionTreatmentCreate, "treatment", treatment.ID.String(), nil, treatment)

	return converter.TreatmentToResponse(treatment), nil
}

// ExportHistoryPDF streams the patient's full history as a PDF document.
// Patients may only export their own.
func (u *clinicalRecordUsecase) ExportHistoryPDF(ctx context.Context, principal entity.Principal, patientID uuid.UUID, w io.Writer) error {
	if principal.Role == entity.RolePatient && patientID != principal.ID {
		return ErrRecordForbidden
	}

	patient, err := u.patientRepo.FindByUserID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	records, err := u.recordRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list records for patient %s: %+v", patientID, err)
		return err
	}

	return u.pdf.Render(w, patient, records)
}

// findVisible loads a record and enforces visibility: patients see only their
// own, dentists and admins see all.
func (u *clinicalRecordUsecase) findVisible(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.ClinicalRecord, error) {
	record, err := u.recordRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find clinical record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if principal.Role == entity.RolePatient && record.PatientID != principal.ID {
		return nil, ErrRecordForbidden
	}

	return record, nil
}
