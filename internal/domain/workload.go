package domain

import "fmt"

// WorkloadExtension is the filename suffix that marks a file as a
// workload definition. The match is case-sensitive.
const WorkloadExtension = ".json"

// Workload represents a single workload definition discovered on disk.
// The file contents are opaque to the runner; only the external worker
// reads them.
type Workload struct {
	// TaskID is the filename with the workload extension stripped.
	// It names the unit of work and is passed to the worker verbatim.
	TaskID string `json:"task_id"`
	// Path is the location of the definition file.
	Path string `json:"path"`
}

// Validate checks if the workload is well formed.
func (w *Workload) Validate() error {
	if w.TaskID == "" {
		return fmt.Errorf("workload task ID cannot be empty")
	}
	if w.Path == "" {
		return fmt.Errorf("workload path cannot be empty")
	}
	return nil
}
