package scheduler_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"bench-runner/internal/scheduler"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewBatchScheduler_RejectsInvalidExpression(t *testing.T) {
	_, err := scheduler.NewBatchScheduler("not a cron expr", func(context.Context) {}, testLogger())
	require.Error(t, err)
}

func TestNewBatchScheduler_AcceptsDescriptors(t *testing.T) {
	s, err := scheduler.NewBatchScheduler("@hourly", func(context.Context) {}, testLogger())
	require.NoError(t, err)
	assert.Assert(t, s != nil)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	s, err := scheduler.NewBatchScheduler("@every 1h", func(context.Context) {}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}

func TestScheduledBatchRuns(t *testing.T) {
	var runs atomic.Int32
	s, err := scheduler.NewBatchScheduler("@every 100ms", func(context.Context) {
		runs.Add(1)
	}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = s.Start(ctx)

	assert.Assert(t, runs.Load() >= 1)
}
