package formation

import (
	"cmp"
	"slices"

	"github.com/okian/teamup/internal/domain/model"
)

// skillBased sorts by skill descending, seeds one leader per team, then snake
// drafts everyone else starting with a reverse pass.
func skillBased(ps []*model.Participant, teamCount, teamSize int) *arena {
	sorted := slices.Clone(ps)
	slices.SortStableFunc(sorted, func(a, b *model.Participant) int {
		return cmp.Compare(b.SkillLevel, a.SkillLevel)
	})

	a := newArena(teamCount, teamSize)
	rest := make([]*model.Participant, 0, len(sorted))
	seeded := 0
	for _, p := range sorted {
		if seeded < teamCount && p.IsLeader() {
			a.place(seeded, p)
			seeded++
			continue
		}
		rest = append(rest, p)
	}

	a.snake(rest)
	return a
}
