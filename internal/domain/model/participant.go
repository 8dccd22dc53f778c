// Package model contains domain models passed between layers.
package model

import "fmt"

// Participant is a single player on the roster.
// Age is 0 when unknown (the participant CSV carries no age column).
// PersonalityScore ranges 0..100 and SkillLevel 1..10.
type Participant struct {
	ID               string
	Name             string
	Age              int
	Email            string
	PersonalityScore int
	PreferredGame    string
	PreferredRole    Role
	SkillLevel       int
}

// PersonalityType is derived from PersonalityScore on every call.
func (p *Participant) PersonalityType() PersonalityType {
	return PersonalityTypeFor(p.PersonalityScore)
}

// IsLeader reports whether the participant counts toward a team's leader quota.
func (p *Participant) IsLeader() bool {
	return p.PersonalityType() == Leader
}

func (p *Participant) String() string {
	return fmt.Sprintf("%s (%s) - %s, %s, skill %d, %s",
		p.Name, p.ID, p.PreferredGame, p.PreferredRole, p.SkillLevel, p.PersonalityType())
}
