// internal/runner/runner.go
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"bench-runner/internal/domain"
	"bench-runner/internal/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// statusPrefix precedes the task identifier on every status line.
const statusPrefix = "running task: "

// Runner dispatches a batch of workloads to the worker executor,
// strictly one at a time. Each dispatch completes before the next
// begins.
type Runner struct {
	executor      domain.WorkerExecutor
	hardwareType  string
	stopOnFailure bool
	out           io.Writer
	logger        *slog.Logger
	tracer        trace.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

// WithStopOnFailure makes the runner abort the remaining batch after
// the first dispatch that does not succeed. The default is to report
// and continue.
func WithStopOnFailure() Option {
	return func(r *Runner) { r.stopOnFailure = true }
}

// NewRunner creates a sequential batch runner. Status lines are
// written to out, one per dispatched task.
func NewRunner(executor domain.WorkerExecutor, hardwareType string, out io.Writer, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		executor:     executor,
		hardwareType: hardwareType,
		out:          out,
		logger:       logger.With("component", "runner"),
		tracer:       otel.Tracer("bench-runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run dispatches every workload in order and returns the per-dispatch
// results. Worker failures are recorded and logged but do not stop the
// batch unless stop-on-failure is enabled; the only other early exit is
// context cancellation.
func (r *Runner) Run(ctx context.Context, workloads []domain.Workload) ([]*domain.DispatchResult, error) {
	ctx, span := r.tracer.Start(ctx, "runner.Run",
		trace.WithAttributes(attribute.Int("batch.size", len(workloads))))
	defer span.End()

	metrics.BatchInFlight.Set(1)
	defer metrics.BatchInFlight.Set(0)

	results := make([]*domain.DispatchResult, 0, len(workloads))
	for _, w := range workloads {
		select {
		case <-ctx.Done():
			span.SetStatus(codes.Error, "batch cancelled")
			return results, ctx.Err()
		default:
		}

		if err := w.Validate(); err != nil {
			span.RecordError(err)
			return results, err
		}

		if _, err := fmt.Fprintf(r.out, "%s%s\n", statusPrefix, w.TaskID); err != nil {
			span.RecordError(err)
			return results, fmt.Errorf("failed to write status line: %w", err)
		}

		req := &domain.DispatchRequest{
			TaskID:       w.TaskID,
			HardwareType: r.hardwareType,
		}

		result, err := r.executor.Execute(ctx, req)
		if result != nil {
			results = append(results, result)
			metrics.DispatchesTotal.WithLabelValues(result.TaskID, string(result.Status)).Inc()
			metrics.DispatchDuration.WithLabelValues(result.TaskID).Observe(result.Duration().Seconds())
		}

		if err != nil {
			r.logger.Error("dispatch failed", "task", w.TaskID, "error", err)
			if r.stopOnFailure {
				span.SetStatus(codes.Error, "batch aborted on failure")
				span.RecordError(err)
				return results, fmt.Errorf("stopping batch after failed task %s: %w", w.TaskID, err)
			}
			continue
		}

		r.logger.Info("dispatch completed", "task", w.TaskID, "status", string(result.Status))
	}

	r.logger.Info("batch finished", "dispatched", len(results))
	return results, nil
}
