package domain_test

import (
	"testing"
	"time"

	"bench-runner/internal/domain"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

func TestDispatchRequestValidate(t *testing.T) {
	req := &domain.DispatchRequest{TaskID: "matmul", HardwareType: "GPU"}
	require.NoError(t, req.Validate())

	req = &domain.DispatchRequest{TaskID: "", HardwareType: "GPU"}
	require.Error(t, req.Validate())

	req = &domain.DispatchRequest{TaskID: "matmul", HardwareType: ""}
	require.Error(t, req.Validate())
}

func TestDispatchResultValidate(t *testing.T) {
	now := time.Now()

	result := &domain.DispatchResult{
		ID:        "abc",
		TaskID:    "matmul",
		Status:    domain.DispatchStatusSuccess,
		StartTime: now,
		EndTime:   now,
	}
	require.NoError(t, result.Validate())

	for _, broken := range []*domain.DispatchResult{
		{TaskID: "matmul", Status: domain.DispatchStatusSuccess, StartTime: now},
		{ID: "abc", Status: domain.DispatchStatusSuccess, StartTime: now},
		{ID: "abc", TaskID: "matmul", StartTime: now},
		{ID: "abc", TaskID: "matmul", Status: domain.DispatchStatusSuccess},
	} {
		require.Error(t, broken.Validate())
	}
}

func TestDispatchResultDuration(t *testing.T) {
	start := time.Now()

	result := &domain.DispatchResult{StartTime: start, EndTime: start.Add(2 * time.Second)}
	assert.Equal(t, 2*time.Second, result.Duration())

	// End before start collapses to zero rather than going negative.
	result = &domain.DispatchResult{StartTime: start, EndTime: start.Add(-time.Second)}
	assert.Equal(t, time.Duration(0), result.Duration())
}

func TestWorkloadValidate(t *testing.T) {
	w := &domain.Workload{TaskID: "conv2d", Path: "workloads/conv2d.json"}
	require.NoError(t, w.Validate())

	require.Error(t, (&domain.Workload{Path: "workloads/conv2d.json"}).Validate())
	require.Error(t, (&domain.Workload{TaskID: "conv2d"}).Validate())
}
