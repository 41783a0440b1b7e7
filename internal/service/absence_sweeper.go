package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dental-clinic-api/config"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// AbsenceSweeper is the daily background task that transitions overdue
// scheduled appointments to "absent". Patients who neither attended nor
// cancelled would otherwise leave ghost rows pending forever.
//
// One run is a single failure boundary: an error logs and aborts the current
// run, records already updated stay updated, and the next scheduled run picks
// up whatever is still overdue. There is no immediate retry.
type AbsenceSweeper struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	audit           AuditService
	hour            int
	minute          int

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewAbsenceSweeper(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	audit AuditService,
	cfg config.SweepConfig,
) *AbsenceSweeper {
	return &AbsenceSweeper{
		log:             log,
		appointmentRepo: appointmentRepo,
		audit:           audit,
		hour:            cfg.Hour,
		minute:          cfg.Minute,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the sweep loop. Call once at process startup.
func (s *AbsenceSweeper) Start() {
	s.wg.Add(1)
	go s.loop()
	s.log.Infof("Absence sweeper started (runs daily at %02d:%02d)", s.hour, s.minute)
}

// Stop shuts the loop down. Safe to call multiple times.
func (s *AbsenceSweeper) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("Absence sweeper stopped")
	}
}

func (s *AbsenceSweeper) loop() {
	defer s.wg.Done()

	for {
		timer := time.NewTimer(time.Until(s.nextRun(time.Now())))
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			if err := s.RunOnce(context.Background()); err != nil {
				s.log.Errorf("Absence sweep failed: %+v", err)
			}
		}
	}
}

// nextRun returns the next wall-clock occurrence of the configured sweep time.
func (s *AbsenceSweeper) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunOnce performs a single sweep: every scheduled appointment whose date and
// start time have already passed is marked absent.
func (s *AbsenceSweeper) RunOnce(ctx context.Context) error {
	overdue, err := s.appointmentRepo.FindOverdue(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("find overdue appointments: %w", err)
	}

	for i := range overdue {
		appointment := &overdue[i]
		if err := s.appointmentRepo.UpdateStatus(ctx, appointment.ID, entity.AppointmentAbsent); err != nil {
			return fmt.Errorf("mark appointment %s absent: %w", appointment.ID, err)
		}
		s.audit.Record(ctx, nil, entity.AuditActionAppointmentAbsent, "appointment", appointment.ID.String(),
			string(appointment.Status), string(entity.AppointmentAbsent))
	}

	s.log.Infof("Absence sweep completed: %d appointments marked absent", len(overdue))
	return nil
}
