// Package scheduler fires the daily batch jobs at the back-office closing time.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

const refreshSpec = "@every 10m"

type Job interface {
	Run(ctx context.Context, runAt *time.Time) (*domain.RunReport, error)
}

type SettingsLoader interface {
	Load(ctx context.Context) (*domain.Settings, error)
}

type Scheduler struct {
	cron    *cron.Cron
	loader  SettingsLoader
	jobs    map[string]Job
	mu      sync.Mutex
	entries []cron.EntryID
	closing *domain.ClosingTime
	ctx     context.Context
	done    chan struct{}
}

func New(loc *time.Location, loader SettingsLoader, jobs map[string]Job) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		loader: loader,
		jobs:   jobs,
		ctx:    context.Background(),
		done:   make(chan struct{}),
	}
}

// Spec converts a closing time into a daily cron expression.
func Spec(c domain.ClosingTime) string {
	return fmt.Sprintf("%d %d * * *", c.Minute, c.Hour)
}

// Start schedules the jobs and a periodic re-read of the closing time. The
// scheduler stops when ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx = ctx
	if err := s.refresh(ctx); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(refreshSpec, func() {
		if err := s.refresh(ctx); err != nil {
			zap.L().Error("failed to refresh job schedule", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	zap.L().Info("scheduler started", zap.Int("jobs", len(s.jobs)))

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		zap.L().Info("scheduler stopped")
		close(s.done)
	}()
	return nil
}

// Done is closed once the scheduler has stopped and no job is running.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) refresh(ctx context.Context) error {
	settings, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}
	return s.reschedule(settings.ClosingTime)
}

// reschedule replaces the job entries when the closing time changed.
func (s *Scheduler) reschedule(closing domain.ClosingTime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing != nil && *s.closing == closing {
		return nil
	}
	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = s.entries[:0]

	spec := Spec(closing)
	for name, job := range s.jobs {
		name, job := name, job
		id, err := s.cron.AddFunc(spec, func() { s.fire(name, job) })
		if err != nil {
			return err
		}
		s.entries = append(s.entries, id)
	}
	s.closing = &closing
	zap.L().Info("jobs scheduled", zap.String("closingTime", closing.String()), zap.String("spec", spec))
	return nil
}

func (s *Scheduler) fire(name string, job Job) {
	report, err := job.Run(s.ctx, nil)
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		zap.L().Warn("job still running, trigger ignored", zap.String("job", name))
	case err != nil:
		zap.L().Error("job failed", zap.String("job", name), zap.Error(err))
	default:
		zap.L().Info("job finished", zap.String("job", name),
			zap.Time("creditDate", report.CreditDate), zap.Bool("skipped", report.Skipped),
			zap.Int("credited", report.Credited), zap.Int("failed", report.Failed))
	}
}
