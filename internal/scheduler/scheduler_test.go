package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() *Scheduler {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewScheduler(time.Second, l)
}

func TestScheduleAndRunNow(t *testing.T) {
	s := newTestScheduler()
	calls := 0
	require.NoError(t, s.Schedule("review", "0 7 * * *", func(ctx context.Context) error {
		calls++
		return nil
	}))
	require.NoError(t, s.Schedule("update", "", func(ctx context.Context) error { return nil }))

	assert.Equal(t, []string{"review"}, s.Jobs(), "empty expressions are skipped")

	require.NoError(t, s.RunNow(context.Background(), "review"))
	assert.Equal(t, 1, calls)

	assert.Error(t, s.RunNow(context.Background(), "missing"))
}

func TestScheduleRejectsBadInput(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.Schedule("bad", "not a cron", func(ctx context.Context) error { return nil }))

	require.NoError(t, s.Schedule("job", "@hourly", func(ctx context.Context) error { return nil }))
	assert.Error(t, s.Schedule("job", "@daily", func(ctx context.Context) error { return nil }))
}

func TestRunNowReturnsJobError(t *testing.T) {
	s := newTestScheduler()
	boom := errors.New("feed down")
	require.NoError(t, s.Schedule("analyze", "@daily", func(ctx context.Context) error { return boom }))

	assert.ErrorIs(t, s.RunNow(context.Background(), "analyze"), boom)
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.Start(), "nothing to run")
	assert.True(t, s.NextRun().IsZero())

	require.NoError(t, s.Schedule("analyze", "@every 1h", func(ctx context.Context) error { return nil }))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.Error(t, s.Schedule("late", "@daily", func(ctx context.Context) error { return nil }))

	next := s.NextRun()
	assert.False(t, next.IsZero())
	assert.WithinDuration(t, time.Now().Add(time.Hour), next, 5*time.Second)

	s.Stop()
	assert.False(t, s.IsRunning())
}
