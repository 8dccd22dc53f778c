package model

import "strings"

// Role is the in-game role a participant prefers.
type Role string

// Supported roles.
const (
	Strategist  Role = "Strategist"
	Attacker    Role = "Attacker"
	Defender    Role = "Defender"
	Supporter   Role = "Supporter"
	Coordinator Role = "Coordinator"
)

// Roles is the canonical role order used by role-based formation.
var Roles = []Role{Strategist, Attacker, Defender, Supporter, Coordinator} //nolint:gochecknoglobals // fixed enum order

// ParseRole matches s against the known roles, ignoring case and surrounding space.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return "", false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
