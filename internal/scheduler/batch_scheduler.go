// internal/scheduler/batch_scheduler.go
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// BatchFunc runs one full workload batch.
type BatchFunc func(ctx context.Context)

// BatchScheduler re-runs the workload batch on a cron schedule. A tick
// is skipped while the previous batch is still running, so at most one
// batch is in flight at a time.
type BatchScheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewBatchScheduler creates a scheduler that triggers run according to
// the cron expression. The expression is validated here.
func NewBatchScheduler(schedule string, run BatchFunc, logger *slog.Logger) (*BatchScheduler, error) {
	logger = logger.With("component", "batch-scheduler")
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(&cronLogger{logger: logger}),
	))

	wrapper := &batchJobWrapper{
		run:    run,
		logger: logger,
		tracer: otel.Tracer("bench-runner-scheduler"),
	}
	if _, err := c.AddJob(schedule, wrapper); err != nil {
		logger.Error("failed to add batch to cron", "schedule", schedule, "error", err)
		return nil, err
	}

	logger.Info("scheduled recurring batch", "schedule", schedule)
	return &BatchScheduler{cron: c, logger: logger}, nil
}

// Start runs the scheduler until the context is cancelled, then waits
// for an in-flight batch to finish.
func (s *BatchScheduler) Start(ctx context.Context) error {
	s.logger.Info("batch scheduler started")
	s.cron.Start()
	<-ctx.Done()
	s.logger.Info("batch scheduler stopping...")
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("batch scheduler stopped")
	return ctx.Err()
}

// batchJobWrapper is the cron.Job that triggers one batch per tick.
type batchJobWrapper struct {
	run    BatchFunc
	logger *slog.Logger
	tracer trace.Tracer
}

// Run is called by the cron library once per tick.
func (w *batchJobWrapper) Run() {
	ctx, span := w.tracer.Start(context.Background(), "scheduler.RunBatch")
	defer span.End()

	w.logger.Info("triggering scheduled batch")
	w.run(ctx)
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
