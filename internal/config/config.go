// internal/config/config.go
package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the runner.
// The mapstructure tags are used by Viper to unmarshal the data.
type Config struct {
	// WorkloadDir is the directory scanned for workload definitions.
	WorkloadDir string `mapstructure:"workload_dir" validate:"required"`
	// WorkerEntrypoint is the command line that launches the external
	// worker, split on whitespace before exec.
	WorkerEntrypoint string `mapstructure:"worker_entrypoint" validate:"required"`
	// HardwareType is the device selector passed through to the worker.
	HardwareType string `mapstructure:"hardware_type" validate:"required"`
	// DispatchTimeout bounds a single worker invocation. Zero means no
	// timeout.
	DispatchTimeout time.Duration `mapstructure:"dispatch_timeout" validate:"gte=0"`
	// StopOnFailure aborts the remaining batch after the first dispatch
	// that does not succeed. Off by default: the runner reports and
	// continues.
	StopOnFailure bool `mapstructure:"stop_on_failure"`
	// Schedule is an optional cron expression. When set, the batch is
	// re-run on that schedule instead of once.
	Schedule string `mapstructure:"schedule"`
	// MetricsListenAddr, when set, serves Prometheus metrics on this
	// address while the runner is alive.
	MetricsListenAddr string `mapstructure:"metrics_listen_addr"`
}

// RegisterFlags declares the CLI surface on the given flag set. The
// flags are bound into viper so precedence is flag > env > config file
// > default.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("workload-dir", "workloads", "directory containing workload definition files")
	fs.String("worker", "python3 launch.py", "worker entrypoint command line")
	fs.String("hardware-type", "GPU", "device selector passed to the worker")
	fs.Duration("dispatch-timeout", 0, "per-dispatch timeout, 0 disables")
	fs.Bool("stop-on-failure", false, "abort the batch on the first failed dispatch")
	fs.String("schedule", "", "cron expression to re-run the batch on, empty runs once")
	fs.String("metrics-addr", "", "address to serve Prometheus metrics on, empty disables")
}

// Load loads configuration from flags, file, and environment variables.
func Load(fs *pflag.FlagSet) (*Config, error) {
	// Set default values
	viper.SetDefault("workload_dir", "workloads")
	viper.SetDefault("worker_entrypoint", "python3 launch.py")
	viper.SetDefault("hardware_type", "GPU")
	viper.SetDefault("dispatch_timeout", "0s")

	// Set config file details
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Read environment variables
	viper.AutomaticEnv()

	if fs != nil {
		bindings := map[string]string{
			"workload_dir":        "workload-dir",
			"worker_entrypoint":   "worker",
			"hardware_type":       "hardware-type",
			"dispatch_timeout":    "dispatch-timeout",
			"stop_on_failure":     "stop-on-failure",
			"schedule":            "schedule",
			"metrics_listen_addr": "metrics-addr",
		}
		for key, flag := range bindings {
			if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
				return nil, err
			}
		}
	}

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; rely on defaults, flags, and env vars
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
