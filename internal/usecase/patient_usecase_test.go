package usecase

import (
	"context"
	"testing"
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type patientFixture struct {
	usecase  PatientUsecase
	patients *fakePatientRepo
	users    *fakeUserRepo
	audit    *fakeAudit

	anaID  uuid.UUID
	luisID uuid.UUID
}

func newPatientFixture(t *testing.T) *patientFixture {
	t.Helper()

	anaID := uuid.New()
	luisID := uuid.New()

	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{
		anaID:  {ID: anaID, FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com", Role: entity.RolePatient, IsActive: true},
		luisID: {ID: luisID, FirstName: "Luis", LastName: "Marin", Email: "luis@example.com", Role: entity.RolePatient, IsActive: true},
	}}
	patients := &fakePatientRepo{profiles: map[uuid.UUID]*entity.PatientProfile{
		anaID:  {UserID: anaID, Phone: "555-0101", Gender: entity.GenderFemale, User: *users.users[anaID]},
		luisID: {UserID: luisID, Phone: "555-0202", Gender: entity.GenderMale, User: *users.users[luisID]},
	}}
	audit := &fakeAudit{}

	return &patientFixture{
		usecase:  NewPatientUsecase(logrus.New(), patients, users, audit),
		patients: patients,
		users:    users,
		audit:    audit,
		anaID:    anaID,
		luisID:   luisID,
	}
}

func TestPatientListRequiresStaff(t *testing.T) {
	f := newPatientFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		principal entity.Principal
		wantErr   error
		wantTotal int
	}{
		{"admin sees all", entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}, nil, 2},
		{"dentist sees all", entity.Principal{ID: uuid.New(), Role: entity.RoleDentist}, nil, 2},
		{"patient denied", entity.Principal{ID: f.anaID, Role: entity.RolePatient}, ErrPatientForbidden, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := f.usecase.List(ctx, tt.principal)
			if err != tt.wantErr {
				t.Fatalf("List() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && list.Total != tt.wantTotal {
				t.Errorf("List() total = %d, want %d", list.Total, tt.wantTotal)
			}
		})
	}
}

func TestPatientGetByIDAccess(t *testing.T) {
	f := newPatientFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		principal entity.Principal
		target    uuid.UUID
		wantErr   error
	}{
		{"admin reads anyone", entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}, f.anaID, nil},
		{"dentist reads anyone", entity.Principal{ID: uuid.New(), Role: entity.RoleDentist}, f.luisID, nil},
		{"patient reads self", entity.Principal{ID: f.anaID, Role: entity.RolePatient}, f.anaID, nil},
		{"patient denied other", entity.Principal{ID: f.anaID, Role: entity.RolePatient}, f.luisID, ErrPatientForbidden},
		{"unknown patient", entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}, uuid.New(), ErrPatientNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.usecase.GetByID(ctx, tt.principal, tt.target)
			if err != tt.wantErr {
				t.Fatalf("GetByID() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got.UserID != tt.target {
				t.Errorf("GetByID() user id = %s, want %s", got.UserID, tt.target)
			}
		})
	}
}

func TestPatientUpdateAppliesOnlyGivenFields(t *testing.T) {
	f := newPatientFixture(t)
	admin := entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}

	got, err := f.usecase.Update(context.Background(), admin, f.anaID, &dto.UpdatePatientRequest{
		LastName:    "Lopez Garcia",
		Phone:       strPtr("555-0303"),
		DateOfBirth: "1990-04-12",
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	if got.FullName != "Ana Lopez Garcia" {
		t.Errorf("full name = %q, want first name untouched", got.FullName)
	}
	if got.Phone != "555-0303" {
		t.Errorf("phone = %q, want 555-0303", got.Phone)
	}
	if got.DateOfBirth != "1990-04-12" {
		t.Errorf("date of birth = %q, want 1990-04-12", got.DateOfBirth)
	}
	if got.Gender != entity.GenderFemale {
		t.Errorf("gender = %q, want untouched", got.Gender)
	}

	stored := f.patients.profiles[f.anaID]
	if stored.User.LastName != "Lopez Garcia" {
		t.Errorf("stored last name = %q, want persisted", stored.User.LastName)
	}
	if want := time.Date(1990, 4, 12, 0, 0, 0, 0, time.Local); !stored.DateOfBirth.Equal(want) {
		t.Errorf("stored date of birth = %v, want %v", stored.DateOfBirth, want)
	}
	if len(f.audit.actions) != 1 || f.audit.actions[0] != entity.AuditActionPatientUpdate {
		t.Errorf("audit actions = %v, want one patient update entry", f.audit.actions)
	}
}

func TestPatientUpdateRejections(t *testing.T) {
	f := newPatientFixture(t)

	tests := []struct {
		name      string
		principal entity.Principal
		target    uuid.UUID
		req       *dto.UpdatePatientRequest
		wantErr   error
	}{
		{
			name:      "patient cannot edit another patient",
			principal: entity.Principal{ID: f.luisID, Role: entity.RolePatient},
			target:    f.anaID,
			req:       &dto.UpdatePatientRequest{Phone: strPtr("555-9999")},
			wantErr:   ErrPatientForbidden,
		},
		{
			name:      "bad date of birth",
			principal: entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin},
			target:    f.anaID,
			req:       &dto.UpdatePatientRequest{DateOfBirth: "12/04/1990"},
			wantErr:   ErrInvalidDateOfBirth,
		},
		{
			name:      "unknown patient",
			principal: entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin},
			target:    uuid.New(),
			req:       &dto.UpdatePatientRequest{Phone: strPtr("555-9999")},
			wantErr:   ErrPatientNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.usecase.Update(context.Background(), tt.principal, tt.target, tt.req); err != tt.wantErr {
				t.Fatalf("Update() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if f.patients.profiles[f.anaID].Phone != "555-0101" {
		t.Errorf("phone = %q, rejected updates must not persist", f.patients.profiles[f.anaID].Phone)
	}
}

func strPtr(s string) *string { return &s }
