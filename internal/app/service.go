// Package service wires the roster, the CSV store, and the formation engine
// into the operations the CLI exposes.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/okian/teamup/internal/adapters/repository"
	"github.com/okian/teamup/internal/domain/formation"
	"github.com/okian/teamup/internal/domain/model"
	"github.com/okian/teamup/internal/domain/roster"
	"github.com/okian/teamup/internal/domain/validation"
	"github.com/okian/teamup/internal/rostergen"
	"github.com/okian/teamup/pkg/logger"
)

// SampleFile is the fallback roster LoadAutomatically tries after the
// configured participant file.
const SampleFile = "participants_sample.csv"

// Service implements the team formation workflow.
type Service struct {
	mu sync.RWMutex

	// Core components
	roster roster.Roster
	store  repository.Store
	engine *formation.Engine

	// Configuration
	workerCount       int
	queueSize         int
	parallelThreshold int
	maxParticipants   int
	dataDir           string
	participantsFile  string
	teamsFile         string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:       runtime.NumCPU(),
		queueSize:         64,
		parallelThreshold: 1000,
		dataDir:           "data",
		participantsFile:  "allParticipants.csv",
		teamsFile:         "formed_teams.csv",
		logger:            nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.roster = roster.NewInMemoryRoster(roster.WithMaxSize(s.maxParticipants))
	if s.store == nil {
		s.store = repository.NewCSVStore(repository.WithLogger(s.logger.Named("repository")))
	}
	s.engine = s.newEngine()

	s.started = true
	s.logger.Info(ctx, "teamup service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("parallelThreshold", s.parallelThreshold),
		logger.String("dataDir", s.dataDir),
	)

	return nil
}

// Stop releases the engine's worker pool. Calling it more than once is safe.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.started = false

	if err := s.engine.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "engine shutdown failed", logger.Error(err))
		return err
	}

	s.logger.Info(ctx, "teamup service stopped")
	return nil
}

func (s *Service) newEngine() *formation.Engine {
	return formation.New(
		formation.WithLogger(s.logger),
		formation.WithWorkerCount(s.workerCount),
		formation.WithQueueSize(s.queueSize),
		formation.WithParallelThreshold(s.parallelThreshold),
	)
}

func (s *Service) running() error {
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// AddParticipant validates p and appends it to the roster.
func (s *Service) AddParticipant(ctx context.Context, p *model.Participant) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return err
	}
	if p == nil {
		return roster.ErrNilParticipant
	}
	if err := validation.Participant(p); err != nil {
		return err
	}
	return s.roster.Add(ctx, p)
}

// Participants returns the roster in insertion order.
func (s *Service) Participants() []*model.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil
	}
	return s.roster.All()
}

// FindParticipant looks a participant up by id.
func (s *Service) FindParticipant(id string) (*model.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, false
	}
	return s.roster.FindByID(id)
}

// ClearParticipants empties the roster.
func (s *Service) ClearParticipants() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.started {
		s.roster.Clear()
	}
}

// LoadFromCSV reads path and adds every participant not already held.
// It returns the number added.
func (s *Service) LoadFromCSV(ctx context.Context, path string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return 0, err
	}
	return s.load(ctx, path)
}

func (s *Service) load(ctx context.Context, path string) (int, error) {
	ps, err := s.store.ReadParticipants(ctx, path)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, p := range ps {
		err := s.roster.Add(ctx, p)
		switch {
		case err == nil:
			added++
		case errors.Is(err, roster.ErrDuplicateEmail), errors.Is(err, roster.ErrDuplicateID):
			s.logger.Debug(ctx, "skipping duplicate participant",
				logger.String("id", p.ID),
				logger.String("email", p.Email),
			)
		default:
			return added, err
		}
	}

	s.logger.Info(ctx, "participants loaded",
		logger.String("path", path),
		logger.Int("read", len(ps)),
		logger.Int("added", added),
	)
	return added, nil
}

// LoadAutomatically loads the configured participant file from the data dir,
// falling back to the sample file. It returns the path used and the number added.
func (s *Service) LoadAutomatically(ctx context.Context) (string, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return "", 0, err
	}

	for _, name := range []string{s.participantsFile, SampleFile} {
		path := filepath.Join(s.dataDir, name)
		if !s.store.ValidateFile(path) {
			continue
		}
		n, err := s.load(ctx, path)
		return path, n, err
	}
	return "", 0, fmt.Errorf("%w in %s", ErrNoDataFile, s.dataDir)
}

// GenerateParticipants adds count synthetic participants that every algorithm
// can form into teams of teamSize. It returns the number added.
func (s *Service) GenerateParticipants(ctx context.Context, count, teamSize int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return 0, err
	}

	ps, err := rostergen.Generate(ctx, rostergen.Config{
		Count:    count,
		TeamSize: teamSize,
		Workers:  s.workerCount,
	}, s.logger.Named("rostergen"))
	if err != nil {
		return 0, err
	}

	for i, p := range ps {
		if err := s.roster.Add(ctx, p); err != nil {
			return i, err
		}
	}
	return len(ps), nil
}

// SaveAllParticipants merges the roster into the participant file, keeping
// rows already on disk and dropping repeated emails. It returns the path written.
func (s *Service) SaveAllParticipants(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dataDir, s.participantsFile)

	var existing []*model.Participant
	if s.store.ValidateFile(path) {
		ps, err := s.store.ReadParticipants(ctx, path)
		switch {
		case err == nil:
			existing = ps
		case errors.Is(err, repository.ErrNoValidParticipants):
			s.logger.Warn(ctx, "existing participant file has no valid rows", logger.String("path", path))
		default:
			return "", err
		}
	}

	merged := roster.MergeByEmail(existing, s.roster.All())
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", repository.ErrFileProcessing, err)
	}
	if err := s.store.WriteParticipants(ctx, path, merged); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "participants saved",
		logger.String("path", path),
		logger.Int("existing", len(existing)),
		logger.Int("written", len(merged)),
	)
	return path, nil
}

// FormTeams runs algo over the roster.
func (s *Service) FormTeams(ctx context.Context, algo formation.Algorithm, teamSize int) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return nil, err
	}
	return s.engine.Form(ctx, algo, s.roster.All(), teamSize)
}

// FormedTeams returns the teams of the last successful FormTeams call.
func (s *Service) FormedTeams() []*model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil
	}
	return s.engine.FormedTeams()
}

// ExportTeams writes the formed teams into the data dir. An empty name uses
// the configured teams file; a missing .csv extension is added.
func (s *Service) ExportTeams(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return "", err
	}

	teams := s.engine.FormedTeams()
	if len(teams) == 0 {
		return "", ErrNoFormedTeams
	}

	name, err := exportName(name, s.teamsFile)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dataDir, name)
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", repository.ErrFileProcessing, err)
	}
	if err := s.store.WriteTeams(ctx, path, teams); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "teams exported",
		logger.String("path", path),
		logger.Int("teams", len(teams)),
	)
	return path, nil
}

func exportName(name, fallback string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback, nil
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		name += ".csv"
	}
	return name, nil
}

// Statistics summarizes teams.
func (s *Service) Statistics(teams []*model.Team) formation.Statistics {
	return formation.Calculate(teams)
}

// Compare runs every algorithm over the roster concurrently, each on its own
// engine, and returns the statistics per algorithm. The first failure is returned.
func (s *Service) Compare(ctx context.Context, teamSize int) (map[formation.Algorithm]formation.Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return nil, err
	}

	participants := s.roster.All()
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	results := make([]formation.Statistics, len(formation.Algorithms))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(len(formation.Algorithms))
	for i, algo := range formation.Algorithms {
		i, algo := i, algo
		g.Go(func() error {
			engine := s.newEngine()
			defer func() {
				if err := engine.Shutdown(context.WithoutCancel(gCtx)); err != nil {
					s.logger.Warn(gCtx, "compare engine shutdown failed", logger.Error(err))
				}
			}()

			teams, err := engine.Form(gCtx, algo, participants, teamSize)
			if err != nil {
				return fmt.Errorf("%s: %w", algo, err)
			}
			results[i] = formation.Calculate(teams)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[formation.Algorithm]formation.Statistics, len(results))
	for i, algo := range formation.Algorithms {
		out[algo] = results[i]
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":           s.started,
		"workerCount":       s.workerCount,
		"queueSize":         s.queueSize,
		"parallelThreshold": s.parallelThreshold,
		"dataDir":           s.dataDir,
	}

	if s.started {
		stats["participants"] = s.roster.Size()
		stats["formedTeams"] = len(s.engine.FormedTeams())
	}

	return stats
}
