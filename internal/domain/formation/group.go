package formation

import (
	"context"
	"fmt"
	"slices"

	"github.com/okian/teamup/internal/domain/model"
	"github.com/okian/teamup/pkg/metrics"
)

// grouping maps a key to participant indices. keys holds first-appearance order.
type grouping struct {
	keys    []string
	members map[string][]int
}

func newGrouping() grouping {
	return grouping{members: make(map[string][]int)}
}

func (g *grouping) add(key string, index int) {
	if _, ok := g.members[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.members[key] = append(g.members[key], index)
}

// merge appends other's groups. Merging contiguous chunks in chunk order gives
// the same grouping as one sequential pass.
func (g *grouping) merge(other grouping) {
	for _, key := range other.keys {
		for _, idx := range other.members[key] {
			g.add(key, idx)
		}
	}
}

// interleave takes one participant per key per pass, keys in the given order.
func (g grouping) interleave(ps []*model.Participant, order []string) []*model.Participant {
	out := make([]*model.Participant, 0, len(ps))
	for pass := 0; len(out) < len(ps); pass++ {
		took := false
		for _, key := range order {
			idxs := g.members[key]
			if pass < len(idxs) {
				out = append(out, ps[idxs[pass]])
				took = true
			}
		}
		if !took {
			break
		}
	}
	return out
}

func groupRange(ps []*model.Participant, from, to int, key func(*model.Participant) string) grouping {
	g := newGrouping()
	for i := from; i < to; i++ {
		g.add(key(ps[i]), i)
	}
	return g
}

func gameKey(p *model.Participant) string { return p.PreferredGame }
func roleKey(p *model.Participant) string { return string(p.PreferredRole) }

// canonicalRoleOrder sorts keys by the canonical role order. Keys that are not
// known roles follow in first-appearance order.
func canonicalRoleOrder(keys []string) []string {
	rank := func(k string) int {
		if i := slices.Index(model.Roles, model.Role(k)); i >= 0 {
			return i
		}
		return len(model.Roles)
	}
	out := slices.Clone(keys)
	slices.SortStableFunc(out, func(a, b string) int { return rank(a) - rank(b) })
	return out
}

// group buckets ps by key, on the worker pool once the input reaches the
// parallel threshold.
func (e *Engine) group(ctx context.Context, ps []*model.Participant, key func(*model.Participant) string) (grouping, error) {
	pool := e.poolFor(ctx, len(ps))
	if pool == nil {
		return groupRange(ps, 0, len(ps), key), nil
	}

	chunk := (len(ps) + pool.Size() - 1) / pool.Size()
	var fns []func(context.Context) (any, error)
	for from := 0; from < len(ps); from += chunk {
		from := from
		to := min(from+chunk, len(ps))
		fns = append(fns, func(context.Context) (any, error) {
			return groupRange(ps, from, to, key), nil
		})
	}

	values, err := pool.Run(ctx, fns)
	if err != nil {
		return grouping{}, fmt.Errorf("parallel grouping: %w", err)
	}
	metrics.RecordParallelGrouping()

	g := newGrouping()
	for _, v := range values {
		g.merge(v.(grouping))
	}
	return g, nil
}
