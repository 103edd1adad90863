// internal/infra/exec/process_executor.go
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	osexec "os/exec"
	"strings"
	"time"

	"bench-runner/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// processExecutor implements domain.WorkerExecutor by spawning the
// worker entrypoint as a child process, once per dispatch.
type processExecutor struct {
	entrypoint []string
	timeout    time.Duration
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewProcessExecutor creates a WorkerExecutor that runs the given
// entrypoint command line (split on whitespace). A zero timeout leaves
// the worker unbounded.
func NewProcessExecutor(entrypoint string, timeout time.Duration, logger *slog.Logger) (domain.WorkerExecutor, error) {
	parts := strings.Fields(entrypoint)
	if len(parts) == 0 {
		return nil, fmt.Errorf("worker entrypoint cannot be empty")
	}
	return &processExecutor{
		entrypoint: parts,
		timeout:    timeout,
		logger:     logger.With("executor_type", "process"),
		tracer:     otel.Tracer("bench-runner-process-executor"),
	}, nil
}

// Execute spawns the worker with exactly the task identifier and the
// device selector as flag values, blocks until it exits, and records
// the outcome. A non-nil result is returned alongside any error so the
// caller can keep the batch going.
func (e *processExecutor) Execute(ctx context.Context, req *domain.DispatchRequest) (*domain.DispatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "executor.process.Execute",
		trace.WithAttributes(
			attribute.String("task.id", req.TaskID),
			attribute.String("task.hardware_type", req.HardwareType),
		))
	defer span.End()

	execCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := append([]string{}, e.entrypoint[1:]...)
	args = append(args, "--task", req.TaskID, "--hardware_type", req.HardwareType)

	e.logger.Info("invoking worker", "task", req.TaskID, "hardware_type", req.HardwareType)

	cmd := osexec.CommandContext(execCtx, e.entrypoint[0], args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	result := &domain.DispatchResult{
		ID:        uuid.New().String(),
		TaskID:    req.TaskID,
		StartTime: time.Now(),
	}

	err := cmd.Run()
	result.EndTime = time.Now()
	result.Output = output.String()

	switch {
	case err == nil:
		result.Status = domain.DispatchStatusSuccess
		result.ExitCode = 0
	default:
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			result.Status = domain.DispatchStatusFailed
			result.ExitCode = exitErr.ExitCode()
			result.Error = err.Error()
		} else {
			// The worker never launched (missing binary, bad path).
			result.Status = domain.DispatchStatusLaunchError
			result.ExitCode = -1
			result.Error = err.Error()
		}
		span.SetStatus(codes.Error, "worker dispatch failed")
		span.RecordError(err)
		return result, fmt.Errorf("worker dispatch failed for task %s: %w", req.TaskID, err)
	}

	e.logger.Info("worker finished", "task", req.TaskID, "exit_code", result.ExitCode)
	return result, nil
}
