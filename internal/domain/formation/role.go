package formation

import (
	"context"

	"github.com/okian/teamup/internal/domain/model"
)

// roleBased seeds leaders round-robin, then deals one participant per role per
// pass with roles in canonical order.
func (e *Engine) roleBased(ctx context.Context, ps []*model.Participant, teamCount, teamSize int) (*arena, error) {
	leaders, others := splitLeaders(ps)
	a := newArena(teamCount, teamSize)
	next := a.roundRobin(0, leaders)

	g, err := e.group(ctx, others, roleKey)
	if err != nil {
		return nil, err
	}
	a.roundRobin(next, g.interleave(others, canonicalRoleOrder(g.keys)))
	return a, nil
}
