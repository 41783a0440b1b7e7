package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fakeAppointmentRepo struct {
	appointments  map[uuid.UUID]*entity.Appointment
	conflictCalls int
	failCreate    error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *entity.Appointment) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	copied := *a
	f.appointments[a.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) FindConflicting(_ context.Context, doctorID uuid.UUID, date time.Time, startTime string, excludeID uuid.UUID) (*entity.Appointment, error) {
	f.conflictCalls++
	for _, a := range f.appointments {
		if a.ID == excludeID || a.Status == entity.AppointmentCancelled {
			continue
		}
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.StartTime == startTime {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindScoped(_ context.Context, scope entity.AppointmentScope) ([]entity.Appointment, error) {
	if scope.None {
		return []entity.Appointment{}, nil
	}
	var out []entity.Appointment
	for _, a := range f.appointments {
		if scope.PatientID != nil && a.PatientID != *scope.PatientID {
			continue
		}
		if scope.DoctorID != nil && a.DoctorID != *scope.DoctorID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindOverdue(_ context.Context, now time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.Status == entity.AppointmentScheduled && a.StartsBefore(now) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, a *entity.Appointment) error {
	copied := *a
	f.appointments[a.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.AppointmentStatus) error {
	a, ok := f.appointments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.appointments, id)
	return nil
}

type fakeDentistRepo struct {
	profiles map[uuid.UUID]*entity.DentistProfile
}

func (f *fakeDentistRepo) Create(_ *gorm.DB, p *entity.DentistProfile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeDentistRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.DentistProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeDentistRepo) FindAll(_ context.Context) ([]entity.DentistProfile, error) {
	var out []entity.DentistProfile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

type fakeServiceRepo struct {
	services map[int]*entity.Service
}

func (f *fakeServiceRepo) Create(_ context.Context, s *entity.Service) error {
	f.services[s.ID] = s
	return nil
}

func (f *fakeServiceRepo) FindAll(_ context.Context, _, _ int) ([]entity.Service, int64, error) {
	var out []entity.Service
	for _, s := range f.services {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id int) (*entity.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceRepo) Update(_ context.Context, s *entity.Service) error {
	f.services[s.ID] = s
	return nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id int) error {
	delete(f.services, id)
	return nil
}

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, _ *uuid.UUID, action string, _ string, _ string, _, _ interface{}) {
	f.actions = append(f.actions, action)
}

type appointmentFixture struct {
	usecase   AppointmentUsecase
	repo      *fakeAppointmentRepo
	audit     *fakeAudit
	doctorID  uuid.UUID
	serviceID int
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	doctorID := uuid.New()
	dentists := &fakeDentistRepo{profiles: map[uuid.UUID]*entity.DentistProfile{
		doctorID: {UserID: doctorID, Specialty: "Ortodoncia", LicenseNumber: "LIC-001"},
	}}
	services := &fakeServiceRepo{services: map[int]*entity.Service{
		1: {ID: 1, Name: "Limpieza", Price: decimal.NewFromInt(50)},
	}}

	repo := newFakeAppointmentRepo()
	audit := &fakeAudit{}
	log := logrus.New()

	return &appointmentFixture{
		usecase:   NewAppointmentUsecase(log, repo, dentists, services, audit),
		repo:      repo,
		audit:     audit,
		doctorID:  doctorID,
		serviceID: 1,
	}
}

func futureDate(t *testing.T) string {
	t.Helper()
	return time.Now().AddDate(0, 0, 7).Format(entity.DateLayout)
}

func intPtr(v int) *int { return &v }

func TestAppointmentCreateValidation(t *testing.T) {
	fx := newAppointmentFixture(t)
	patient := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}

	tests := []struct {
		name    string
		req     dto.CreateAppointmentRequest
		wantErr error
	}{
		{
			name:    "missing doctor",
			req:     dto.CreateAppointmentRequest{ServiceID: intPtr(1), Date: futureDate(t), StartTime: "10:00"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing service",
			req:     dto.CreateAppointmentRequest{DoctorID: fx.doctorID, Date: futureDate(t), StartTime: "10:00"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing date",
			req:     dto.CreateAppointmentRequest{DoctorID: fx.doctorID, ServiceID: intPtr(1), StartTime: "10:00"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "bad date format",
			req:     dto.CreateAppointmentRequest{DoctorID: fx.doctorID, ServiceID: intPtr(1), Date: "15-03-2030", StartTime: "10:00"},
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "bad time format",
			req:     dto.CreateAppointmentRequest{DoctorID: fx.doctorID, ServiceID: intPtr(1), Date: futureDate(t), StartTime: "10am"},
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "out of range time",
			req:     dto.CreateAppointmentRequest{DoctorID: fx.doctorID, ServiceID: intPtr(1), Date: futureDate(t), StartTime: "24:00"},
			wantErr: ErrInvalidTimeFormat,
		},
		{
			name:    "past date",
			req:     dto.CreateAppointmentRequest{DoctorID: fx.doctorID, ServiceID: intPtr(1), Date: "2020-01-01", StartTime: "10:00"},
			wantErr: ErrPastDate,
		},
		{
			name:    "unknown doctor",
			req:     dto.CreateAppointmentRequest{DoctorID: uuid.New(), ServiceID: intPtr(1), Date: futureDate(t), StartTime: "10:00"},
			wantErr: ErrDoctorNotFound,
		},
		{
			name:    "unknown service",
			req:     dto.CreateAppointmentRequest{DoctorID: fx.doctorID, ServiceID: intPtr(99), Date: futureDate(t), StartTime: "10:00"},
			wantErr: ErrServiceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.usecase.Create(context.Background(), patient, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppointmentCreatePatientBooksSelf(t *testing.T) {
	fx := newAppointmentFixture(t)
	patient := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	other := uuid.New()

	// A patient naming someone else still books for themselves
	resp, err := fx.usecase.Create(context.Background(), patient, &dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      futureDate(t),
		StartTime: "10:00",
		PatientID: &other,
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if resp.PatientID != patient.ID {
		t.Errorf("PatientID = %s, want booking principal %s", resp.PatientID, patient.ID)
	}
	if resp.Status != string(entity.AppointmentScheduled) {
		t.Errorf("Status = %q, want %q", resp.Status, entity.AppointmentScheduled)
	}
}

func TestAppointmentCreateAdminNeedsPatient(t *testing.T) {
	fx := newAppointmentFixture(t)
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	_, err := fx.usecase.Create(context.Background(), admin, &dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      futureDate(t),
		StartTime: "10:00",
	})
	if !errors.Is(err, ErrPatientIDRequired) {
		t.Fatalf("Create() error = %v, want ErrPatientIDRequired", err)
	}

	target := uuid.New()
	resp, err := fx.usecase.Create(context.Background(), admin, &dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      futureDate(t),
		StartTime: "10:00",
		PatientID: &target,
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if resp.PatientID != target {
		t.Errorf("PatientID = %s, want %s", resp.PatientID, target)
	}
}

func TestAppointmentCreateSlotConflict(t *testing.T) {
	fx := newAppointmentFixture(t)
	first := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	second := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	date := futureDate(t)

	req := dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      date,
		StartTime: "10:00",
	}

	if _, err := fx.usecase.Create(context.Background(), first, &req); err != nil {
		t.Fatalf("first Create() unexpected error: %v", err)
	}

	if _, err := fx.usecase.Create(context.Background(), second, &req); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("second Create() error = %v, want ErrSlotTaken", err)
	}

	// A different time on the same day is free
	other := req
	other.StartTime = "11:00"
	if _, err := fx.usecase.Create(context.Background(), second, &other); err != nil {
		t.Errorf("Create() at free slot unexpected error: %v", err)
	}
}

func TestAppointmentCreateCancelledSlotIsFree(t *testing.T) {
	fx := newAppointmentFixture(t)
	first := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	second := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	date := futureDate(t)

	req := dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      date,
		StartTime: "10:00",
	}

	created, err := fx.usecase.Create(context.Background(), first, &req)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if err := fx.usecase.Cancel(context.Background(), first, created.ID); err != nil {
		t.Fatalf("Cancel() unexpected error: %v", err)
	}

	if _, err := fx.usecase.Create(context.Background(), second, &req); err != nil {
		t.Errorf("Create() on freed slot unexpected error: %v", err)
	}
}

func TestAppointmentSlotReleasedOnlyByCancel(t *testing.T) {
	fx := newAppointmentFixture(t)
	holder := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	rival := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}

	req := dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      futureDate(t),
		StartTime: "09:30",
	}

	held, err := fx.usecase.Create(context.Background(), holder, &req)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if _, err := fx.usecase.Create(context.Background(), rival, &req); err != ErrSlotTaken {
		t.Fatalf("Create() on occupied slot error = %v, want ErrSlotTaken", err)
	}

	if err := fx.usecase.Cancel(context.Background(), holder, held.ID); err != nil {
		t.Fatalf("Cancel() unexpected error: %v", err)
	}

	rebooked, err := fx.usecase.Create(context.Background(), rival, &req)
	if err != nil {
		t.Fatalf("Create() after cancel unexpected error: %v", err)
	}
	if rebooked.ID == held.ID {
		t.Error("rebooking must create a new appointment, not resurrect the cancelled one")
	}
}

func TestAppointmentListScoping(t *testing.T) {
	fx := newAppointmentFixture(t)
	patientA := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	patientB := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}
	dentist := entity.Principal{ID: fx.doctorID, Role: entity.RoleDentist}
	date := futureDate(t)

	for i, p := range []entity.Principal{patientA, patientA, patientB} {
		req := dto.CreateAppointmentRequest{
			DoctorID:  fx.doctorID,
			ServiceID: intPtr(fx.serviceID),
			Date:      date,
			StartTime: time.Date(0, 1, 1, 9+i, 0, 0, 0, time.UTC).Format(entity.TimeLayout),
		}
		if _, err := fx.usecase.Create(context.Background(), p, &req); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}

	tests := []struct {
		name      string
		principal entity.Principal
		want      int
	}{
		{name: "admin sees all", principal: admin, want: 3},
		{name: "patient sees own", principal: patientA, want: 2},
		{name: "other patient sees own", principal: patientB, want: 1},
		{name: "dentist sees assigned", principal: dentist, want: 3},
		{name: "unknown role sees nothing", principal: entity.Principal{ID: uuid.New(), Role: entity.Role("ghost")}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := fx.usecase.List(context.Background(), tt.principal)
			if err != nil {
				t.Fatalf("List() unexpected error: %v", err)
			}
			if resp.Total != tt.want {
				t.Errorf("Total = %d, want %d", resp.Total, tt.want)
			}
		})
	}
}

func TestAppointmentGetByIDOwnership(t *testing.T) {
	fx := newAppointmentFixture(t)
	owner := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	stranger := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}
	assigned := entity.Principal{ID: fx.doctorID, Role: entity.RoleDentist}
	otherDentist := entity.Principal{ID: uuid.New(), Role: entity.RoleDentist}

	created, err := fx.usecase.Create(context.Background(), owner, &dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      futureDate(t),
		StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		principal entity.Principal
		wantErr   error
	}{
		{name: "owner allowed", principal: owner},
		{name: "admin allowed", principal: admin},
		{name: "assigned dentist allowed", principal: assigned},
		{name: "other patient forbidden", principal: stranger, wantErr: ErrAppointmentForbidden},
		{name: "other dentist forbidden", principal: otherDentist, wantErr: ErrAppointmentForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.usecase.GetByID(context.Background(), tt.principal, created.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetByID() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("unknown id", func(t *testing.T) {
		_, err := fx.usecase.GetByID(context.Background(), admin, uuid.New())
		if !errors.Is(err, ErrAppointmentNotFound) {
			t.Errorf("GetByID() error = %v, want ErrAppointmentNotFound", err)
		}
	})
}

func TestAppointmentUpdateSlotChecks(t *testing.T) {
	fx := newAppointmentFixture(t)
	owner := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	date := futureDate(t)

	created, err := fx.usecase.Create(context.Background(), owner, &dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      date,
		StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if _, err := fx.usecase.Create(context.Background(), owner, &dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      date,
		StartTime: "11:00",
	}); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	t.Run("moving onto an occupied slot conflicts", func(t *testing.T) {
		_, err := fx.usecase.Update(context.Background(), owner, created.ID, &dto.UpdateAppointmentRequest{StartTime: "11:00"})
		if !errors.Is(err, ErrSlotTaken) {
			t.Errorf("Update() error = %v, want ErrSlotTaken", err)
		}
	})

	t.Run("keeping own slot does not self conflict", func(t *testing.T) {
		_, err := fx.usecase.Update(context.Background(), owner, created.ID, &dto.UpdateAppointmentRequest{StartTime: "10:00"})
		if err != nil {
			t.Errorf("Update() unexpected error: %v", err)
		}
	})

	t.Run("moving into the past is rejected", func(t *testing.T) {
		_, err := fx.usecase.Update(context.Background(), owner, created.ID, &dto.UpdateAppointmentRequest{Date: "2020-01-01"})
		if !errors.Is(err, ErrPastDate) {
			t.Errorf("Update() error = %v, want ErrPastDate", err)
		}
	})

	t.Run("service-only update skips the conflict check", func(t *testing.T) {
		before := fx.repo.conflictCalls
		_, err := fx.usecase.Update(context.Background(), owner, created.ID, &dto.UpdateAppointmentRequest{ServiceID: intPtr(fx.serviceID)})
		if err != nil {
			t.Fatalf("Update() unexpected error: %v", err)
		}
		if fx.repo.conflictCalls != before {
			t.Errorf("conflict check ran %d extra times, want 0", fx.repo.conflictCalls-before)
		}
	})

	t.Run("bad time format rejected", func(t *testing.T) {
		_, err := fx.usecase.Update(context.Background(), owner, created.ID, &dto.UpdateAppointmentRequest{StartTime: "noon"})
		if !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("Update() error = %v, want ErrInvalidTimeFormat", err)
		}
	})
}

func TestAppointmentCancel(t *testing.T) {
	fx := newAppointmentFixture(t)
	owner := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	stranger := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	created, err := fx.usecase.Create(context.Background(), owner, &dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      futureDate(t),
		StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := fx.usecase.Cancel(context.Background(), stranger, created.ID); !errors.Is(err, ErrAppointmentForbidden) {
		t.Errorf("Cancel() by stranger error = %v, want ErrAppointmentForbidden", err)
	}

	if err := fx.usecase.Cancel(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("Cancel() by owner unexpected error: %v", err)
	}
	if got := fx.repo.appointments[created.ID].Status; got != entity.AppointmentCancelled {
		t.Errorf("Status = %q, want cancelled", got)
	}

	// Cancelling again is a no-op, not an error
	if err := fx.usecase.Cancel(context.Background(), owner, created.ID); err != nil {
		t.Errorf("repeat Cancel() unexpected error: %v", err)
	}

	if err := fx.usecase.Cancel(context.Background(), admin, uuid.New()); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("Cancel() unknown id error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestAppointmentHardDelete(t *testing.T) {
	fx := newAppointmentFixture(t)
	owner := entity.Principal{ID: uuid.New(), Role: entity.RolePatient}
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	created, err := fx.usecase.Create(context.Background(), owner, &dto.CreateAppointmentRequest{
		DoctorID:  fx.doctorID,
		ServiceID: intPtr(fx.serviceID),
		Date:      futureDate(t),
		StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := fx.usecase.HardDelete(context.Background(), admin, uuid.New()); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("HardDelete() unknown id error = %v, want ErrAppointmentNotFound", err)
	}

	if err := fx.usecase.HardDelete(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("HardDelete() unexpected error: %v", err)
	}
	if _, ok := fx.repo.appointments[created.ID]; ok {
		t.Error("appointment still present after hard delete")
	}
}
