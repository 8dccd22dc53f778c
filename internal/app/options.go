package service

import (
	"github.com/okian/teamup/internal/adapters/repository"
	"github.com/okian/teamup/internal/config"
	"github.com/okian/teamup/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig copies the file locations and pool sizing from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		WithWorkerCount(cfg.WorkerCount)(s)
		WithQueueSize(cfg.QueueSize)(s)
		WithParallelThreshold(cfg.ParallelThreshold)(s)
		WithDataDir(cfg.DataDir)(s)
		WithParticipantsFile(cfg.ParticipantsFile)(s)
		WithTeamsFile(cfg.TeamsFile)(s)
	}
}

// WithWorkerCount sets the number of grouping workers per engine.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the engine's task queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithParallelThreshold sets the roster size at which grouping moves to the
// worker pool. Zero or negative keeps grouping sequential.
func WithParallelThreshold(n int) Option {
	return func(s *Service) {
		s.parallelThreshold = n
	}
}

// WithDataDir sets the directory holding participant and team files.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithParticipantsFile sets the participant file name inside the data dir.
func WithParticipantsFile(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.participantsFile = name
		}
	}
}

// WithTeamsFile sets the default export file name inside the data dir.
func WithTeamsFile(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.teamsFile = name
		}
	}
}

// WithMaxParticipants caps the roster.
func WithMaxParticipants(n int) Option {
	return func(s *Service) {
		s.maxParticipants = n
	}
}

// WithStore replaces the CSV store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
