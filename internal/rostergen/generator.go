// Package rostergen produces synthetic participant rosters for trying out the
// formation algorithms on realistic sizes.
package rostergen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/teamup/internal/domain/formation"
	"github.com/okian/teamup/internal/domain/model"
	"github.com/okian/teamup/pkg/logger"
)

// Score bands for non-leaders. A draw out of bandDivisor picks the band;
// anything past caseUnknown falls back to 0-89.
const (
	bandDivisor     = 8
	caseBalanced    = 0 // 70-89, most common
	caseBalancedAlt = 1
	caseBalancedLow = 2
	caseThinker     = 3 // 50-69
	caseThinkerAlt  = 4
	caseThinkerLow  = 5
	caseUnknown     = 6 // 20-49, rare
	unknownMinScore = 20

	maxScore         = 100
	leaderScoreRange = maxScore - model.LeaderMinScore + 1
)

// Skill bands, weighted toward the middle. Anything past caseSkillLow is 8-10.
const (
	skillDivisor = 4
	caseSkillMid = 0 // 4-7
	caseSkillAlt = 1
	caseSkillLow = 2 // 1-3
)

var games = []string{"Chess", "Valorant", "FIFA", "Basketball", "CS:GO", "DOTA 2"} //nolint:gochecknoglobals // fixed sample pool

var firstNames = []string{ //nolint:gochecknoglobals // fixed sample pool
	"Amara", "Ben", "Chloe", "Dev", "Elena", "Farid", "Grace", "Hugo", "Ines", "Jonah",
	"Kira", "Liam", "Maya", "Noah", "Olga", "Priya", "Quinn", "Rafael", "Sara", "Tomas",
}

// randInt returns a uniform value in [0, n) using crypto/rand.
func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// between returns a uniform value in [lo, hi].
func between(lo, hi int) int {
	return lo + randInt(hi-lo+1)
}

// Generate creates cfg.Count valid participants with a Leader count that every
// formation algorithm accepts for cfg.TeamSize.
func Generate(ctx context.Context, cfg Config, log logger.Logger) ([]*model.Participant, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.TeamSize < formation.MinTeamSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTeamSize, cfg.TeamSize)
	}
	if cfg.Count < cfg.TeamSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidCount, cfg.Count, cfg.TeamSize)
	}

	log.Info(ctx, "generating participants", logger.Int("count", cfg.Count), logger.Int("teamSize", cfg.TeamSize))

	participants := make([]*model.Participant, cfg.Count)

	type result struct {
		index int
		p     *model.Participant
		err   error
	}
	resultChan := make(chan result, cfg.Count)

	workerCount := max(1, min(cfg.Workers, cfg.Count))
	perWorker := cfg.Count / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = cfg.Count // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- result{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- result{index: i, p: generateOne(i)}
				}
			}
		}(start, end)
	}

	for i := 0; i < cfg.Count; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case r := <-resultChan:
			if r.err != nil {
				return nil, fmt.Errorf("generate participant %d: %w", r.index, r.err)
			}
			participants[r.index] = r.p
		}
	}

	leaders := promoteLeaders(participants, cfg.Count/cfg.TeamSize)
	log.Info(ctx, "generated participants",
		logger.Int("count", len(participants)),
		logger.Int("leaders", leaders),
	)
	return participants, nil
}

// generateOne builds a non-leader participant for position i.
func generateOne(i int) *model.Participant {
	id := uuid.NewString()
	name := fmt.Sprintf("%s %03d", firstNames[randInt(len(firstNames))], i+1)
	return &model.Participant{
		ID:               id,
		Name:             name,
		Email:            strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "." + id[:8] + "@teamup.test",
		PersonalityScore: nonLeaderScore(),
		PreferredGame:    games[randInt(len(games))],
		PreferredRole:    model.Roles[randInt(len(model.Roles))],
		SkillLevel:       skillLevel(),
	}
}

// promoteLeaders raises randomly chosen participants into the Leader band so
// that teams <= leaders <= 2*teams. It returns the leader count.
func promoteLeaders(ps []*model.Participant, teams int) int {
	leaders := between(teams, min(2*teams, len(ps)))

	// Partial Fisher-Yates over indices picks distinct participants.
	idx := make([]int, len(ps))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < leaders; i++ {
		j := i + randInt(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		ps[idx[i]].PersonalityScore = model.LeaderMinScore + randInt(leaderScoreRange)
	}
	return leaders
}

func nonLeaderScore() int {
	switch randInt(bandDivisor) {
	case caseBalanced, caseBalancedAlt, caseBalancedLow:
		return between(model.BalancedMinScore, model.LeaderMinScore-1)
	case caseThinker, caseThinkerAlt, caseThinkerLow:
		return between(model.ThinkerMinScore, model.BalancedMinScore-1)
	case caseUnknown:
		return between(unknownMinScore, model.ThinkerMinScore-1)
	default:
		return between(0, model.LeaderMinScore-1)
	}
}

func skillLevel() int {
	switch randInt(skillDivisor) {
	case caseSkillMid, caseSkillAlt:
		return between(4, 7)
	case caseSkillLow:
		return between(1, 3)
	default:
		return between(8, 10)
	}
}
