package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dental-clinic-api/config"
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type sweepRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
	failUpdate   error
}

func newSweepRepo(appointments ...*entity.Appointment) *sweepRepo {
	r := &sweepRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
	for _, a := range appointments {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		r.appointments[a.ID] = a
	}
	return r
}

func (r *sweepRepo) Create(context.Context, *entity.Appointment) error { return nil }

func (r *sweepRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	return r.appointments[id], nil
}

func (r *sweepRepo) FindConflicting(context.Context, uuid.UUID, time.Time, string, uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}

func (r *sweepRepo) FindScoped(context.Context, entity.AppointmentScope) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *sweepRepo) FindOverdue(_ context.Context, now time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.Status == entity.AppointmentScheduled && a.StartsBefore(now) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *sweepRepo) Update(context.Context, *entity.Appointment) error { return nil }

func (r *sweepRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.AppointmentStatus) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	r.appointments[id].Status = status
	return nil
}

func (r *sweepRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.appointments, id)
	return nil
}

type sweepAudit struct {
	actions  []string
	entities []string
}

func (a *sweepAudit) Record(_ context.Context, _ *uuid.UUID, action string, entityName string, _ string, _, _ interface{}) {
	a.actions = append(a.actions, action)
	a.entities = append(a.entities, entityName)
}

func dayOffset(t *testing.T, days int) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(entity.DateLayout, time.Now().AddDate(0, 0, days).Format(entity.DateLayout), time.Local)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func TestSweepMarksOverdueAbsent(t *testing.T) {
	pastScheduled := &entity.Appointment{Date: dayOffset(t, -1), StartTime: "10:00", Status: entity.AppointmentScheduled}
	pastCancelled := &entity.Appointment{Date: dayOffset(t, -1), StartTime: "11:00", Status: entity.AppointmentCancelled}
	pastCompleted := &entity.Appointment{Date: dayOffset(t, -2), StartTime: "09:00", Status: entity.AppointmentCompleted}
	future := &entity.Appointment{Date: dayOffset(t, 1), StartTime: "10:00", Status: entity.AppointmentScheduled}

	repo := newSweepRepo(pastScheduled, pastCancelled, pastCompleted, future)
	audit := &sweepAudit{}
	sweeper := NewAbsenceSweeper(logrus.New(), repo, audit, config.SweepConfig{Hour: 23, Minute: 59})

	if err := sweeper.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() unexpected error: %v", err)
	}

	if pastScheduled.Status != entity.AppointmentAbsent {
		t.Errorf("overdue scheduled appointment status = %q, want absent", pastScheduled.Status)
	}
	if pastCancelled.Status != entity.AppointmentCancelled {
		t.Errorf("cancelled appointment status changed to %q", pastCancelled.Status)
	}
	if pastCompleted.Status != entity.AppointmentCompleted {
		t.Errorf("completed appointment status changed to %q", pastCompleted.Status)
	}
	if future.Status != entity.AppointmentScheduled {
		t.Errorf("future appointment status changed to %q", future.Status)
	}
	if len(audit.actions) != 1 || audit.actions[0] != entity.AuditActionAppointmentAbsent {
		t.Errorf("audit actions = %v, want one mark_absent entry", audit.actions)
	}
	if len(audit.entities) != 1 || audit.entities[0] != "appointment" {
		t.Errorf("audit entities = %v, want the appointment label used everywhere else", audit.entities)
	}
}

func TestSweepAbortsOnUpdateError(t *testing.T) {
	overdue := &entity.Appointment{Date: dayOffset(t, -1), StartTime: "10:00", Status: entity.AppointmentScheduled}
	repo := newSweepRepo(overdue)
	repo.failUpdate = errors.New("connection lost")

	sweeper := NewAbsenceSweeper(logrus.New(), repo, &sweepAudit{}, config.SweepConfig{Hour: 23, Minute: 59})

	if err := sweeper.RunOnce(context.Background()); err == nil {
		t.Fatal("RunOnce() expected error when the status update fails")
	}
	if overdue.Status != entity.AppointmentScheduled {
		t.Errorf("status = %q, want scheduled left untouched", overdue.Status)
	}
}

func TestSweepNextRun(t *testing.T) {
	sweeper := NewAbsenceSweeper(logrus.New(), newSweepRepo(), &sweepAudit{}, config.SweepConfig{Hour: 23, Minute: 59})

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before the sweep time runs today",
			now:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local),
			want: time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local),
		},
		{
			name: "exactly at the sweep time runs tomorrow",
			now:  time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local),
			want: time.Date(2026, 3, 16, 23, 59, 0, 0, time.Local),
		},
		{
			name: "after the sweep time runs tomorrow",
			now:  time.Date(2026, 3, 15, 23, 59, 30, 0, time.Local),
			want: time.Date(2026, 3, 16, 23, 59, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sweeper.nextRun(tt.now); !got.Equal(tt.want) {
				t.Errorf("nextRun(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestSweeperStopIsIdempotent(t *testing.T) {
	sweeper := NewAbsenceSweeper(logrus.New(), newSweepRepo(), &sweepAudit{}, config.SweepConfig{Hour: 23, Minute: 59})
	sweeper.Start()
	sweeper.Stop()
	sweeper.Stop()
}
