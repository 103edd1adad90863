// cmd/benchrunner/main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bench-runner/internal/config"
	"bench-runner/internal/discovery"
	exec_infra "bench-runner/internal/infra/exec"
	"bench-runner/internal/runner"
	"bench-runner/internal/scheduler"
	"bench-runner/internal/tracing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

func main() {
	// 1. Initialize logger and tracer. Status lines go to stdout, so
	// structured logs go to stderr to keep the output stream clean.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	tracerShutdown, err := tracing.InitTracer("bench-runner")
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracerShutdown(context.Background()); err != nil {
			log.Printf("failed to shutdown tracer: %v", err)
		}
	}()

	// 2. Load configuration
	fs := pflag.NewFlagSet("benchrunner", pflag.ExitOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}
	cfg, err := config.Load(fs)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// 3. Create root context for lifecycle management
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Setup graceful shutdown
	setupGracefulShutdown(cancel)

	// 5. Optionally serve Prometheus metrics while the runner is alive
	if cfg.MetricsListenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsListenAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		logger.Info("serving metrics", "addr", cfg.MetricsListenAddr)
	}

	// 6. Instantiate components
	disc := discovery.NewWorkloadDiscovery(cfg.WorkloadDir, logger)
	executor, err := exec_infra.NewProcessExecutor(cfg.WorkerEntrypoint, cfg.DispatchTimeout, logger)
	if err != nil {
		log.Fatalf("failed to create worker executor: %v", err)
	}

	var opts []runner.Option
	if cfg.StopOnFailure {
		opts = append(opts, runner.WithStopOnFailure())
	}
	batchRunner := runner.NewRunner(executor, cfg.HardwareType, os.Stdout, logger, opts...)

	runBatch := func(ctx context.Context) error {
		workloads := disc.Discover()
		_, err := batchRunner.Run(ctx, workloads)
		return err
	}

	// 7. Run once, or on a schedule when one is configured
	if cfg.Schedule != "" {
		batchScheduler, err := scheduler.NewBatchScheduler(cfg.Schedule, func(ctx context.Context) {
			if err := runBatch(ctx); err != nil {
				logger.Error("scheduled batch failed", "error", err)
			}
		}, logger)
		if err != nil {
			log.Fatalf("failed to create batch scheduler: %v", err)
		}
		if err := batchScheduler.Start(rootCtx); err != nil && err != context.Canceled {
			log.Fatalf("batch scheduler stopped with error: %v", err)
		}
		return
	}

	// Worker failures are recorded per dispatch and do not affect the
	// exit code; only stop-on-failure surfaces them here.
	if err := runBatch(rootCtx); err != nil {
		log.Fatalf("batch aborted: %v", err)
	}
}

func setupGracefulShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v. Initiating graceful shutdown...", sig)
		cancel()
	}()
}
