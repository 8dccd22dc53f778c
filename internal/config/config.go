// Package config defines teamup configuration and its loading.
//
// Values layer as defaults, then an optional YAML file, then TEAMUP_*
// environment variables.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/teamup/internal/domain/formation"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log records.
	LogFormat string `koanf:"log_format"`

	// WorkerCount sets the number of grouping workers. Below 2 disables the pool.
	WorkerCount int `koanf:"worker_count"`

	// ParallelThreshold is the group input size at which the pool is used.
	ParallelThreshold int `koanf:"parallel_threshold"`

	// QueueSize bounds the pool's task queue.
	QueueSize int `koanf:"queue_size"`

	// TeamSize is the default team size for formation runs.
	TeamSize int `koanf:"team_size"`

	// Algorithm is the default formation algorithm.
	Algorithm string `koanf:"algorithm"`

	// DataDir holds participant files and team exports.
	DataDir string `koanf:"data_dir"`

	// ParticipantsFile is the roster file name inside DataDir.
	ParticipantsFile string `koanf:"participants_file"`

	// TeamsFile is the default export file name inside DataDir.
	TeamsFile string `koanf:"teams_file"`

	// MetricsFile, when set, receives a Prometheus text dump on exit.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		WorkerCount:       runtime.NumCPU(),
		ParallelThreshold: 1000,
		QueueSize:         64,
		TeamSize:          5,
		Algorithm:         string(formation.Balanced),
		DataDir:           "data",
		ParticipantsFile:  "allParticipants.csv",
		TeamsFile:         "formed_teams.csv",
	}
}

// Validate checks values that would make every run fail.
func (c *Config) Validate() error {
	if c.TeamSize < formation.MinTeamSize {
		return fmt.Errorf("%w: team_size must be at least %d, got %d", ErrInvalidConfig, formation.MinTeamSize, c.TeamSize)
	}
	if _, err := formation.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("%w: algorithm: %w", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
