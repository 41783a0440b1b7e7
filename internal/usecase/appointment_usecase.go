package usecase

import (
	"context"
	"errors"
	"regexp"
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
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentForbidden = errors.New("you do not have access to this appointment")
	ErrMissingFields        = errors.New("doctor, service, date and start time are required")
	ErrInvalidDateFormat    = errors.New("date must use the YYYY-MM-DD format")
	ErrInvalidTimeFormat    = errors.New("start time must use the HH:mm format")
	ErrPastDate             = errors.New("cannot schedule an appointment in the past")
	ErrPatientIDRequired    = errors.New("patient id is required when booking for another patient")
	ErrSlotTaken            = errors.New("the doctor already has an appointment at that time")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrServiceNotFound      = errors.New("service not found")
)

var (
	dateFormatRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeFormatRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

type AppointmentUsecase interface {
	Create(ctx context.Context, principal entity.Principal, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, principal entity.Principal) (*dto.AppointmentListResponse, error)
	GetByID(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) error
	HardDelete(ctx context.Context, principal entity.Principal, id uuid.UUID) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	dentistRepo     repository.DentistProfileRepository
	serviceRepo     repository.ServiceRepository
	audit           service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	dentistRepo repository.DentistProfileRepository,
	serviceRepo repository.ServiceRepository,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		dentistRepo:     dentistRepo,
		serviceRepo:     serviceRepo,
		audit:           audit,
	}
}

// Create books a slot for a patient. Admins book on behalf of any patient and
// must name one; patients always book for themselves regardless of what the
// request says.
//
// Flow:
// 1. Validate field formats and reject past slots
// 2. Resolve the target patient from the principal's role
// 3. Verify the dentist and service exist
// 4. Pre-check the slot for a non-cancelled conflict
// 5. Insert; a unique index race surfaces as a duplicate key on the slot index
func (u *appointmentUsecase) Create(ctx context.Context, principal entity.Principal, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.DoctorID == uuid.Nil || req.ServiceID == nil || req.Date == "" || req.StartTime == "" {
		return nil, ErrMissingFields
	}

	date, startTime, err := u.parseSlot(req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}
	if slotStart(date, startTime).Before(time.Now()) {
		return nil, ErrPastDate
	}

	patientID := principal.ID
	if principal.IsAdmin() {
		if req.PatientID == nil || *req.PatientID == uuid.Nil {
			return nil, ErrPatientIDRequired
		}
		patientID = *req.PatientID
	}

	dentist, err := u.dentistRepo.FindByUserID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find dentist %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDoctorNotFound
	}

	svc, err := u.serviceRepo.FindByID(ctx, *req.ServiceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", *req.ServiceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	conflict, err := u.appointmentRepo.FindConflicting(ctx, req.DoctorID, date, startTime, uuid.Nil)
	if err != nil {
		u.log.Warnf("Failed to check slot conflict: %+v", err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		ServiceID: req.ServiceID,
		Date:      date,
		StartTime: startTime,
		Status:    entity.AppointmentScheduled,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), nil, appointment)

	return u.reload(ctx, appointment.ID)
}

// List returns the appointments visible to the principal, ordered by date and
// start time ascending.
func (u *appointmentUsecase) List(ctx context.Context, principal entity.Principal) (*dto.AppointmentListResponse, error) {
	scope := entity.ScopeForPrincipal(principal)

	appointments, err := u.appointmentRepo.FindScoped(ctx, scope)
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", principal.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetByID returns a single appointment. Admins see any, patients only their
// own, dentists only those assigned to them.
func (u *appointmentUsecase) GetByID(ctx context.Context, principal entity.Principal, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

// Update applies a partial change to an appointment. When the doctor, date or
// start time changes the new slot is validated and conflict-checked excluding
// the appointment itself; service-only changes skip the slot checks.
func (u *appointmentUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findVisible(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	changedSlot := false

	if req.DoctorID != nil && *req.DoctorID != appointment.DoctorID {
		dentist, err := u.dentistRepo.FindByUserID(ctx, *req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find dentist %s: %+v", *req.DoctorID, err)
			return nil, err
		}
		if dentist == nil {
			return nil, ErrDoctorNotFound
		}
		appointment.DoctorID = *req.DoctorID
		changedSlot = true
	}

	if req.ServiceID != nil {
		svc, err := u.serviceRepo.FindByID(ctx, *req.ServiceID)
		if err != nil {
			u.log.Warnf("Failed to find service %d: %+v", *req.ServiceID, err)
			return nil, err
		}
		if svc == nil {
			return nil, ErrServiceNotFound
		}
		appointment.ServiceID = req.ServiceID
	}

	if req.Date != "" {
		if !dateFormatRe.MatchString(req.Date) {
			return nil, ErrInvalidDateFormat
		}
		date, err := time.ParseInLocation(entity.DateLayout, req.Date, time.Local)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		appointment.Date = date
		changedSlot = true
	}

	if req.StartTime != "" {
		if !timeFormatRe.MatchString(req.StartTime) {
			return nil, ErrInvalidTimeFormat
		}
		appointment.StartTime = req.StartTime
		changedSlot = true
	}

	if changedSlot {
		if slotStart(appointment.Date, appointment.StartTime).Before(time.Now()) {
			return nil, ErrPastDate
		}

		conflict, err := u.appointmentRepo.FindConflicting(ctx, appointment.DoctorID, appointment.Date, appointment.StartTime, appointment.ID)
		if err != nil {
			u.log.Warnf("Failed to check slot conflict: %+v", err)
			return nil, err
		}
		if conflict != nil {
			return nil, ErrSlotTaken
		}
	}

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionAppointmentUpdate, "appointment", id.String(), nil, appointment)

	return u.reload(ctx, id)
}

// Cancel soft-deletes an appointment, freeing its slot. Only admins and the
// owning patient may cancel; cancelling an already cancelled appointment is a
// no-op.
func (u *appointmentUsecase) Cancel(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if !principal.IsAdmin() && appointment.PatientID != principal.ID {
		return ErrAppointmentForbidden
	}

	if appointment.IsCancelled() {
		return nil
	}

	if err := u.appointmentRepo.UpdateStatus(ctx, id, entity.AppointmentCancelled); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionAppointmentCancel, "appointment", id.String(), appointment.Status, entity.AppointmentCancelled)

	return nil
}

// HardDelete removes the row permanently. The route restricts this to admins.
func (u *appointmentUsecase) HardDelete(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := u.appointmentRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	u.audit.Record(ctx, &principal.ID, entity.AuditActionAppointmentDelete, "appointment", id.String(), appointment, nil)

	return nil
}

// findVisible loads an appointment and enforces per-role visibility: admins
// see any, patients their own, dentists those assigned to them.
func (u *appointmentUsecase) findVisible(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch principal.Role {
	case entity.RoleAdmin:
	case entity.RolePatient:
		if appointment.PatientID != principal.ID {
			return nil, ErrAppointmentForbidden
		}
	case entity.RoleDentist:
		if appointment.DoctorID != principal.ID {
			return nil, ErrAppointmentForbidden
		}
	default:
		return nil, ErrAppointmentForbidden
	}

	return appointment, nil
}

func (u *appointmentUsecase) parseSlot(dateStr, timeStr string) (time.Time, string, error) {
	if !dateFormatRe.MatchString(dateStr) {
		return time.Time{}, "", ErrInvalidDateFormat
	}
	date, err := time.ParseInLocation(entity.DateLayout, dateStr, time.Local)
	if err != nil {
		return time.Time{}, "", ErrInvalidDateFormat
	}
	if !timeFormatRe.MatchString(timeStr) {
		return time.Time{}, "", ErrInvalidTimeFormat
	}
	return date, timeStr, nil
}

// reload fetches the appointment with relations so the response carries the
// flattened patient, doctor and service fields.
func (u *appointmentUsecase) reload(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

// slotStart combines a calendar date with a HH:mm starting time into an instant.
func slotStart(date time.Time, startTime string) time.Time {
	t, err := time.ParseInLocation(entity.TimeLayout, startTime, time.Local)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}
