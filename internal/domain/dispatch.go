// internal/domain/dispatch.go
package domain

import (
	"fmt"
	"time"
)

// DispatchStatus defines the outcome of a single worker invocation.
type DispatchStatus string

const (
	DispatchStatusSuccess     DispatchStatus = "success"
	DispatchStatusFailed      DispatchStatus = "failed"
	DispatchStatusLaunchError DispatchStatus = "launch_error"
)

// DispatchRequest pairs a task identifier with the target device
// selector for one worker invocation. It is ephemeral and lives only
// for the duration of that invocation.
type DispatchRequest struct {
	TaskID       string `json:"task_id"`
	HardwareType string `json:"hardware_type"`
}

// Validate checks if the dispatch request is valid.
func (r *DispatchRequest) Validate() error {
	if r.TaskID == "" {
		return fmt.Errorf("dispatch task ID cannot be empty")
	}
	if r.HardwareType == "" {
		return fmt.Errorf("dispatch hardware type cannot be empty")
	}
	return nil
}

// DispatchResult records the outcome of one worker invocation. The
// runner records results but does not act on them unless stop-on-failure
// is enabled.
type DispatchResult struct {
	ID        string         `json:"id"`                  // Unique ID for this dispatch
	TaskID    string         `json:"task_id"`             // Task that was dispatched
	Status    DispatchStatus `json:"status"`              // success, failed, launch_error
	ExitCode  int            `json:"exit_code"`           // Worker process exit code, -1 if it never launched
	Output    string         `json:"output,omitempty"`    // Combined stdout/stderr of the worker
	Error     string         `json:"error,omitempty"`     // Error message if the dispatch failed
	StartTime time.Time      `json:"start_time"`          // When the worker was spawned
	EndTime   time.Time      `json:"end_time"`            // When the worker exited
}

// Validate checks if the dispatch result is valid.
func (r *DispatchResult) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("dispatch result ID cannot be empty")
	}
	if r.TaskID == "" {
		return fmt.Errorf("dispatch result task ID cannot be empty")
	}
	if r.Status == "" {
		return fmt.Errorf("dispatch result status cannot be empty")
	}
	if r.StartTime.IsZero() {
		return fmt.Errorf("dispatch result start time cannot be zero")
	}
	return nil
}

// Duration returns how long the worker ran, zero if it never launched.
func (r *DispatchResult) Duration() time.Duration {
	if r.EndTime.Before(r.StartTime) {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}
