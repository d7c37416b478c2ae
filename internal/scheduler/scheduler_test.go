package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type stubLoader struct {
	settings *domain.Settings
	err      error
}

func (l *stubLoader) Load(context.Context) (*domain.Settings, error) {
	return l.settings, l.err
}

type stubJob struct {
	calls int
	err   error
}

func (j *stubJob) Run(_ context.Context, runAt *time.Time) (*domain.RunReport, error) {
	j.calls++
	if j.err != nil {
		return nil, j.err
	}
	return &domain.RunReport{Job: "stub"}, nil
}

func TestSpec(t *testing.T) {
	assert.Equal(t, "59 23 * * *", Spec(domain.ClosingTime{Hour: 23, Minute: 59}))
	assert.Equal(t, "5 0 * * *", Spec(domain.ClosingTime{Hour: 0, Minute: 5}))
}

func TestReschedule(t *testing.T) {
	s := New(time.UTC, &stubLoader{}, map[string]Job{"a": &stubJob{}, "b": &stubJob{}})

	require.NoError(t, s.reschedule(domain.ClosingTime{Hour: 23, Minute: 59}))
	assert.Len(t, s.cron.Entries(), 2)
	ids := append([]cron.EntryID(nil), s.entries...)

	require.NoError(t, s.reschedule(domain.ClosingTime{Hour: 23, Minute: 59}))
	assert.Equal(t, ids, s.entries)

	require.NoError(t, s.reschedule(domain.ClosingTime{Hour: 18, Minute: 0}))
	assert.Len(t, s.cron.Entries(), 2)
	assert.Equal(t, domain.ClosingTime{Hour: 18}, *s.closing)
}

func TestStart_LoadError(t *testing.T) {
	s := New(time.UTC, &stubLoader{err: errors.New("db down")}, map[string]Job{})
	assert.Error(t, s.Start(context.Background()))
}

func TestFire(t *testing.T) {
	ok := &stubJob{}
	busy := &stubJob{err: domain.ErrRunInProgress}
	s := New(time.UTC, &stubLoader{}, nil)

	s.fire("ok", ok)
	s.fire("busy", busy)

	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, busy.calls)
}

func TestStartStop(t *testing.T) {
	st := domain.DefaultSettings()
	s := New(time.UTC, &stubLoader{settings: &st}, map[string]Job{"a": &stubJob{}})
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	assert.Len(t, s.cron.Entries(), 2)
	cancel()

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
