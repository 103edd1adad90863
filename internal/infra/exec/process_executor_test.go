package exec_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	execinfra "bench-runner/internal/infra/exec"

	"bench-runner/internal/domain"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewProcessExecutor_EmptyEntrypoint(t *testing.T) {
	_, err := execinfra.NewProcessExecutor("   ", 0, testLogger())
	require.Error(t, err)
	assert.ErrorContains(t, err, "entrypoint cannot be empty")
}

func TestExecute_PassesExactArguments(t *testing.T) {
	// echo prints its argv, which lets the test observe exactly what
	// the worker would receive.
	executor, err := execinfra.NewProcessExecutor("echo", 0, testLogger())
	require.NoError(t, err)

	result, err := executor.Execute(context.Background(), &domain.DispatchRequest{
		TaskID:       "matmul",
		HardwareType: "GPU",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.DispatchStatusSuccess, result.Status)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "--task matmul --hardware_type GPU\n", result.Output)
	assert.Equal(t, "matmul", result.TaskID)
	assert.Assert(t, result.ID != "")
	assert.NilError(t, result.Validate())
}

func TestExecute_MultiWordEntrypoint(t *testing.T) {
	executor, err := execinfra.NewProcessExecutor("echo launch.py", 0, testLogger())
	require.NoError(t, err)

	result, err := executor.Execute(context.Background(), &domain.DispatchRequest{
		TaskID:       "conv2d",
		HardwareType: "CPU",
	})

	require.NoError(t, err)
	assert.Equal(t, "launch.py --task conv2d --hardware_type CPU\n", result.Output)
}

func TestExecute_NonZeroExitIsFailed(t *testing.T) {
	executor, err := execinfra.NewProcessExecutor("false", 0, testLogger())
	require.NoError(t, err)

	result, err := executor.Execute(context.Background(), &domain.DispatchRequest{
		TaskID:       "matmul",
		HardwareType: "GPU",
	})

	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.DispatchStatusFailed, result.Status)
	assert.Equal(t, 1, result.ExitCode)
	assert.Assert(t, result.Error != "")
}

func TestExecute_MissingBinaryIsLaunchError(t *testing.T) {
	executor, err := execinfra.NewProcessExecutor("/nonexistent/launch.py", 0, testLogger())
	require.NoError(t, err)

	result, err := executor.Execute(context.Background(), &domain.DispatchRequest{
		TaskID:       "matmul",
		HardwareType: "GPU",
	})

	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.DispatchStatusLaunchError, result.Status)
	assert.Equal(t, -1, result.ExitCode)
}

func TestExecute_TimeoutKillsWorker(t *testing.T) {
	script := filepath.Join(t.TempDir(), "slow-worker.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nsleep 30\n"), 0o755))

	executor, err := execinfra.NewProcessExecutor(script, 50*time.Millisecond, testLogger())
	require.NoError(t, err)

	start := time.Now()
	result, err := executor.Execute(context.Background(), &domain.DispatchRequest{
		TaskID:       "slow",
		HardwareType: "GPU",
	})

	require.Error(t, err)
	require.NotNil(t, result)
	assert.Assert(t, result.Status != domain.DispatchStatusSuccess)
	assert.Assert(t, time.Since(start) < 10*time.Second)
}

func TestExecute_InvalidRequest(t *testing.T) {
	executor, err := execinfra.NewProcessExecutor("echo", 0, testLogger())
	require.NoError(t, err)

	_, err = executor.Execute(context.Background(), &domain.DispatchRequest{TaskID: "", HardwareType: "GPU"})
	require.Error(t, err)
}
