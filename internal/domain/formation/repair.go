package formation

import "github.com/okian/teamup/internal/domain/model"

// repairLeaders swaps members between slots until every slot holds one or two
// leaders, or no swap can help. Swaps keep every slot's size unchanged. It
// returns the number of swaps made.
func (a *arena) repairLeaders() int {
	swaps := 0
	for limit := a.total(); swaps <= limit; swaps++ {
		if !a.repairOnce() {
			return swaps
		}
	}
	return swaps
}

func (a *arena) repairOnce() bool {
	for i := range a.slots {
		if a.leaders(i) >= MinLeadersPerTeam {
			continue
		}
		donor := a.slotWithMostLeaders()
		if donor < 0 || a.leaders(donor) <= MinLeadersPerTeam {
			continue
		}
		if a.swapLeader(donor, i) {
			return true
		}
	}

	for i := range a.slots {
		if a.leaders(i) <= MaxLeadersPerTeam {
			continue
		}
		recipient := a.slotWithFewestLeaders(i)
		if recipient < 0 || a.leaders(recipient) >= MaxLeadersPerTeam {
			continue
		}
		if a.swapLeader(i, recipient) {
			return true
		}
	}
	return false
}

// swapLeader moves the last leader of from into to, in exchange for the
// non-leader of to whose skill is closest to that leader's.
func (a *arena) swapLeader(from, to int) bool {
	li := -1
	for idx, p := range a.slots[from] {
		if p.IsLeader() {
			li = idx
		}
	}
	if li < 0 {
		return false
	}
	leader := a.slots[from][li]

	oi := closestNonLeader(a.slots[to], leader.SkillLevel)
	if oi < 0 {
		return false
	}

	a.slots[from][li], a.slots[to][oi] = a.slots[to][oi], leader
	return true
}

func closestNonLeader(slot []*model.Participant, skill int) int {
	best, bestDiff := -1, 0
	for idx, p := range slot {
		if p.IsLeader() {
			continue
		}
		diff := abs(p.SkillLevel - skill)
		if best < 0 || diff < bestDiff {
			best, bestDiff = idx, diff
		}
	}
	return best
}

// slotWithMostLeaders returns the lowest-index slot with the highest leader count.
func (a *arena) slotWithMostLeaders() int {
	best, most := -1, -1
	for i := range a.slots {
		if n := a.leaders(i); n > most {
			best, most = i, n
		}
	}
	return best
}

// slotWithFewestLeaders returns the lowest-index slot other than skip with the
// lowest leader count.
func (a *arena) slotWithFewestLeaders(skip int) int {
	best, fewest := -1, 0
	for i := range a.slots {
		if i == skip {
			continue
		}
		if n := a.leaders(i); best < 0 || n < fewest {
			best, fewest = i, n
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
