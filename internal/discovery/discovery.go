// internal/discovery/discovery.go
package discovery

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bench-runner/internal/domain"
)

// WorkloadDiscovery enumerates workload definitions in a directory.
type WorkloadDiscovery struct {
	dir    string
	logger *slog.Logger
}

// NewWorkloadDiscovery creates a new discovery service for the given
// directory.
func NewWorkloadDiscovery(dir string, logger *slog.Logger) *WorkloadDiscovery {
	return &WorkloadDiscovery{
		dir:    dir,
		logger: logger.With("component", "workload-discovery"),
	}
}

// Discover lists the workload definitions in the directory, in
// lexicographic filename order so repeated runs dispatch in the same
// order regardless of the underlying filesystem.
//
// A missing or unreadable directory is not an error: it yields zero
// workloads, with a warning logged. Entries that are directories, do
// not carry the workload extension, or would produce an empty task
// identifier are skipped.
func (d *WorkloadDiscovery) Discover() []domain.Workload {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d.logger.Warn("workload directory does not exist", "dir", d.dir)
		} else {
			d.logger.Warn("workload directory is not readable", "dir", d.dir, "error", err)
		}
		return nil
	}

	workloads := make([]domain.Workload, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		taskID := strings.TrimSuffix(name, domain.WorkloadExtension)
		if taskID == name {
			// No extension match, not a workload definition.
			continue
		}
		if taskID == "" {
			d.logger.Warn("skipping workload with empty task identifier", "file", name)
			continue
		}
		workloads = append(workloads, domain.Workload{
			TaskID: taskID,
			Path:   filepath.Join(d.dir, name),
		})
	}

	sort.Slice(workloads, func(i, j int) bool {
		return workloads[i].TaskID < workloads[j].TaskID
	})

	d.logger.Info("discovered workloads", "dir", d.dir, "count", len(workloads))
	return workloads
}
