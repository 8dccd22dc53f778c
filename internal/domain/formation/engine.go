// Package formation splits a participant roster into teams under the
// one-to-two leaders per team rule.
package formation

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/teamup/internal/adapters/mq/queue"
	"github.com/okian/teamup/internal/adapters/mq/worker"
	"github.com/okian/teamup/internal/domain/model"
	"github.com/okian/teamup/pkg/logger"
	"github.com/okian/teamup/pkg/metrics"
)

// MinTeamSize is the smallest team size a run accepts.
const MinTeamSize = 3

const (
	defaultParallelThreshold = 1000
	defaultQueueSize         = 64
)

// Algorithm selects a formation strategy.
type Algorithm string

// Supported algorithms.
const (
	Balanced   Algorithm = "balanced"
	SkillBased Algorithm = "skill"
	RoleBased  Algorithm = "role"
)

// Algorithms lists every algorithm in display order.
var Algorithms = []Algorithm{Balanced, SkillBased, RoleBased} //nolint:gochecknoglobals // fixed enum order

// ParseAlgorithm accepts "balanced", "skill", "skill-based", "role" and
// "role-based", ignoring case.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "balanced":
		return Balanced, nil
	case "skill", "skill-based", "skill_based":
		return SkillBased, nil
	case "role", "role-based", "role_based":
		return RoleBased, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

func (a Algorithm) String() string { return string(a) }

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	for _, known := range Algorithms {
		if a == known {
			return true
		}
	}
	return false
}

// Engine runs formation algorithms and remembers the latest result.
// It is safe for concurrent use.
type Engine struct {
	logger            logger.Logger
	workerCount       int
	parallelThreshold int
	queueSize         int

	mu     sync.Mutex
	pool   *worker.Pool
	closed bool
	formed []*model.Team
}

// New creates an engine. The worker pool is created on the first run that needs it.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:            logger.Nop(),
		workerCount:       runtime.NumCPU(),
		parallelThreshold: defaultParallelThreshold,
		queueSize:         defaultQueueSize,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// FormBalancedTeams forms teams that mix preferred games.
func (e *Engine) FormBalancedTeams(ctx context.Context, participants []*model.Participant, teamSize int) ([]*model.Team, error) {
	return e.Form(ctx, Balanced, participants, teamSize)
}

// FormSkillBasedTeams forms teams with close average skill.
func (e *Engine) FormSkillBasedTeams(ctx context.Context, participants []*model.Participant, teamSize int) ([]*model.Team, error) {
	return e.Form(ctx, SkillBased, participants, teamSize)
}

// FormRoleBasedTeams forms teams that spread preferred roles.
func (e *Engine) FormRoleBasedTeams(ctx context.Context, participants []*model.Participant, teamSize int) ([]*model.Team, error) {
	return e.Form(ctx, RoleBased, participants, teamSize)
}

// Form runs algo over participants. On success the result replaces FormedTeams;
// on error FormedTeams keeps the previous result.
func (e *Engine) Form(ctx context.Context, algo Algorithm, participants []*model.Participant, teamSize int) ([]*model.Team, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := e.logger.Named("formation")

	if !algo.Valid() {
		metrics.RecordFormationError(algo.String(), "unknown_algorithm")
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(algo))
	}

	teamCount, reason, err := checkInput(participants, teamSize)
	if err != nil {
		metrics.RecordFormationError(algo.String(), reason)
		log.Warn(ctx, "formation rejected",
			logger.String("run_id", runID),
			logger.String("algorithm", algo.String()),
			logger.Error(err),
		)
		return nil, err
	}

	var a *arena
	switch algo {
	case Balanced:
		a, err = e.balanced(ctx, participants, teamCount, teamSize)
	case SkillBased:
		a = skillBased(participants, teamCount, teamSize)
	case RoleBased:
		a, err = e.roleBased(ctx, participants, teamCount, teamSize)
	}
	if err != nil {
		metrics.RecordFormationError(algo.String(), "grouping")
		return nil, err
	}

	repairs := a.repairLeaders()
	for i := 0; i < repairs; i++ {
		metrics.RecordLeaderRepair()
	}

	teams := a.teams(teamSize)
	for _, t := range teams {
		if err := CheckTeam(t); err != nil {
			metrics.RecordFormationError(algo.String(), "constraint")
			return nil, err
		}
	}

	e.mu.Lock()
	e.formed = teams
	e.mu.Unlock()

	elapsed := time.Since(start)
	metrics.RecordFormationRun(algo.String(), float64(elapsed.Microseconds())/1000)
	metrics.UpdateTeamsFormed(len(teams))
	metrics.RecordParticipantsAssigned(len(participants))

	log.Info(ctx, "teams formed",
		logger.String("run_id", runID),
		logger.String("algorithm", algo.String()),
		logger.Int("teams", len(teams)),
		logger.Int("participants", len(participants)),
		logger.Int("leader_repairs", repairs),
		logger.String("elapsed", elapsed.String()),
	)

	return copyTeams(teams), nil
}

// checkInput applies the run preconditions in order and returns the team count.
// reason is a short metrics label for the failed check.
func checkInput(participants []*model.Participant, teamSize int) (int, string, error) {
	if len(participants) == 0 {
		return 0, "empty_roster", fmt.Errorf("%w: no participants", ErrInsufficientInput)
	}
	if teamSize < MinTeamSize {
		return 0, "team_size", fmt.Errorf("%w: team size %d is below %d", ErrInsufficientInput, teamSize, MinTeamSize)
	}
	if len(participants) < teamSize {
		return 0, "roster_too_small", fmt.Errorf("%w: %d participants cannot fill a team of %d",
			ErrInsufficientInput, len(participants), teamSize)
	}
	for i, p := range participants {
		if p == nil {
			return 0, "nil_participant", fmt.Errorf("%w: participant %d is nil", ErrInsufficientInput, i)
		}
	}

	teamCount := len(participants) / teamSize
	if err := CheckFeasible(countLeaders(participants), teamCount); err != nil {
		return 0, "leaders", err
	}
	return teamCount, "", nil
}

// FormedTeams returns the result of the latest successful run, or nil.
func (e *Engine) FormedTeams() []*model.Team {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyTeams(e.formed)
}

// CalculateStatistics summarizes teams. It does not touch engine state.
func (e *Engine) CalculateStatistics(teams []*model.Team) Statistics {
	return Calculate(teams)
}

// poolFor returns the running pool when n items warrant it, starting it on
// first use. It returns nil when grouping should stay on the caller.
func (e *Engine) poolFor(ctx context.Context, n int) *worker.Pool {
	if e.workerCount < 2 || e.parallelThreshold <= 0 || n < e.parallelThreshold {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	if e.pool == nil {
		q := queue.NewInMemoryQueue(queue.WithCapacity(e.queueSize))
		e.pool = worker.NewPool(e.workerCount, q, worker.WithPoolLogger(e.logger.Named("pool")))
		e.pool.Start(context.WithoutCancel(ctx))
	}
	return e.pool
}

// Shutdown releases the worker pool. It is idempotent and safe when no pool
// was started. Later runs group sequentially.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	pool := e.pool
	e.mu.Unlock()

	if pool == nil {
		return nil
	}
	if err := pool.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown formation pool: %w", err)
	}
	return nil
}

func copyTeams(teams []*model.Team) []*model.Team {
	if teams == nil {
		return nil
	}
	out := make([]*model.Team, len(teams))
	copy(out, teams)
	return out
}
