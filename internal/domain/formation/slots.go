package formation

import (
	"strconv"

	"github.com/okian/teamup/internal/domain/model"
)

// arena is the fixed slot array the algorithms fill before Teams exist.
type arena struct {
	slots [][]*model.Participant
}

func newArena(teamCount, teamSize int) *arena {
	a := &arena{slots: make([][]*model.Participant, teamCount)}
	for i := range a.slots {
		a.slots[i] = make([]*model.Participant, 0, teamSize+1)
	}
	return a
}

func (a *arena) size() int { return len(a.slots) }

func (a *arena) place(slot int, p *model.Participant) {
	a.slots[slot] = append(a.slots[slot], p)
}

// roundRobin places ps one per slot starting at start and returns the slot
// the next placement would use.
func (a *arena) roundRobin(start int, ps []*model.Participant) int {
	k := a.size()
	for i, p := range ps {
		a.place((start+i)%k, p)
	}
	return (start + len(ps)) % k
}

// snake places ps serpentine over the slots. The first pass runs k-1..0,
// the next 0..k-1, alternating.
func (a *arena) snake(ps []*model.Participant) {
	k := a.size()
	for i, p := range ps {
		pass, pos := i/k, i%k
		slot := pos
		if pass%2 == 0 {
			slot = k - 1 - pos
		}
		a.place(slot, p)
	}
}

func (a *arena) leaders(slot int) int {
	n := 0
	for _, p := range a.slots[slot] {
		if p.IsLeader() {
			n++
		}
	}
	return n
}

// total counts placed participants.
func (a *arena) total() int {
	n := 0
	for _, s := range a.slots {
		n += len(s)
	}
	return n
}

// teams materializes the slots as "Team 1".."Team k". Each team's capacity is
// its slot's final size, never below teamSize.
func (a *arena) teams(teamSize int) []*model.Team {
	out := make([]*model.Team, len(a.slots))
	for i, slot := range a.slots {
		team := model.NewTeam(strconv.Itoa(i+1), max(teamSize, len(slot)))
		for _, p := range slot {
			team.AddMember(p)
		}
		out[i] = team
	}
	return out
}
