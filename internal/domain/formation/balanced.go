package formation

import (
	"context"

	"github.com/okian/teamup/internal/domain/model"
)

// balanced deals leaders round-robin, then the rest round-robin in an order
// that interleaves preferred games.
func (e *Engine) balanced(ctx context.Context, ps []*model.Participant, teamCount, teamSize int) (*arena, error) {
	leaders, others := splitLeaders(ps)
	a := newArena(teamCount, teamSize)
	next := a.roundRobin(0, leaders)

	g, err := e.group(ctx, others, gameKey)
	if err != nil {
		return nil, err
	}
	a.roundRobin(next, g.interleave(others, g.keys))
	return a, nil
}
