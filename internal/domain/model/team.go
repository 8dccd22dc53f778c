package model

import "fmt"

// Team is an ordered, capacity-bounded group of participants.
// All aggregate values are computed from the current members on demand.
type Team struct {
	id      string
	name    string
	maxSize int
	members []*Participant
}

// NewTeam creates an empty team named "Team <id>". maxSize below 1 is raised to 1.
func NewTeam(id string, maxSize int) *Team {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Team{
		id:      id,
		name:    "Team " + id,
		maxSize: maxSize,
		members: make([]*Participant, 0, maxSize),
	}
}

func (t *Team) ID() string   { return t.id }
func (t *Team) Name() string { return t.name }
func (t *Team) MaxSize() int { return t.maxSize }
func (t *Team) Size() int    { return len(t.members) }
func (t *Team) IsFull() bool { return len(t.members) >= t.maxSize }

// SetName renames the team.
func (t *Team) SetName(name string) { t.name = name }

// AddMember appends p and returns false when the team is already full.
func (t *Team) AddMember(p *Participant) bool {
	if t.IsFull() {
		return false
	}
	t.members = append(t.members, p)
	return true
}

// Members returns a copy of the member list in insertion order.
func (t *Team) Members() []*Participant {
	out := make([]*Participant, len(t.members))
	copy(out, t.members)
	return out
}

// DiversityScore is the number of distinct preferred games.
func (t *Team) DiversityScore() int {
	seen := make(map[string]struct{}, len(t.members))
	for _, m := range t.members {
		seen[m.PreferredGame] = struct{}{}
	}
	return len(seen)
}

// AverageSkillLevel returns 0 for an empty team.
func (t *Team) AverageSkillLevel() float64 {
	if len(t.members) == 0 {
		return 0
	}
	total := 0
	for _, m := range t.members {
		total += m.SkillLevel
	}
	return float64(total) / float64(len(t.members))
}

// PersonalityTypes returns one entry per member, in member order.
func (t *Team) PersonalityTypes() []PersonalityType {
	out := make([]PersonalityType, len(t.members))
	for i, m := range t.members {
		out[i] = m.PersonalityType()
	}
	return out
}

// Roles returns one entry per member, in member order.
func (t *Team) Roles() []Role {
	out := make([]Role, len(t.members))
	for i, m := range t.members {
		out[i] = m.PreferredRole
	}
	return out
}

// Games returns one entry per member, in member order.
func (t *Team) Games() []string {
	out := make([]string, len(t.members))
	for i, m := range t.members {
		out[i] = m.PreferredGame
	}
	return out
}

// LeaderCount counts members whose personality type is Leader.
func (t *Team) LeaderCount() int {
	n := 0
	for _, m := range t.members {
		if m.IsLeader() {
			n++
		}
	}
	return n
}

func (t *Team) String() string {
	return fmt.Sprintf("%s (%d/%d members, avg skill %.2f, diversity %d)",
		t.name, len(t.members), t.maxSize, t.AverageSkillLevel(), t.DiversityScore())
}
