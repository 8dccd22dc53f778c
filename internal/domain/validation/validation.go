// Package validation checks participant fields before they enter the roster.
package validation

import (
	"regexp"
	"strings"

	"github.com/okian/teamup/internal/domain/model"
)

// Field bounds.
const (
	MinScore      = 0
	MaxScore      = 100
	MinAge        = 16
	MaxAge        = 100
	MinSkill      = 1
	MaxSkill      = 10
	MinNameLength = 2
	MinGameLength = 2
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// PersonalityScore accepts 0..100 inclusive.
func PersonalityScore(score int) error {
	if score < MinScore || score > MaxScore {
		return newError(ErrInvalidScore, "personalityScore", "Personality score must be between 0 and 100")
	}
	return nil
}

// Role parses s into a known role.
func Role(s string) (model.Role, error) {
	if strings.TrimSpace(s) == "" {
		return "", newError(ErrInvalidRole, "preferredRole", "Role cannot be empty")
	}
	r, ok := model.ParseRole(s)
	if !ok {
		return "", newError(ErrInvalidRole, "preferredRole",
			"Invalid role '"+s+"'. Valid roles: "+strings.Join(ValidRoles(), ", "))
	}
	return r, nil
}

// ValidRoles lists the accepted role names in canonical order.
func ValidRoles() []string {
	out := make([]string, len(model.Roles))
	for i, r := range model.Roles {
		out[i] = string(r)
	}
	return out
}

// Age accepts 16..100 inclusive.
func Age(age int) error {
	if age < MinAge || age > MaxAge {
		return newError(ErrInvalidAge, "age", "Age must be between 16 and 100")
	}
	return nil
}

// SkillLevel accepts 1..10 inclusive.
func SkillLevel(skill int) error {
	if skill < MinSkill || skill > MaxSkill {
		return newError(ErrInvalidSkill, "skillLevel", "Skill level must be between 1 and 10")
	}
	return nil
}

// Email requires a local part, an @ and a dotted domain.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return newError(ErrInvalidEmail, "email", "Email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return newError(ErrInvalidEmail, "email", "Invalid email format")
	}
	return nil
}

// Name requires at least two non-space characters.
func Name(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return newError(ErrInvalidName, "name", "Name cannot be empty")
	}
	if len([]rune(name)) < MinNameLength {
		return newError(ErrInvalidName, "name", "Name must be at least 2 characters")
	}
	return nil
}

// Game requires at least two non-space characters.
func Game(game string) error {
	game = strings.TrimSpace(game)
	if game == "" {
		return newError(ErrInvalidGame, "preferredGame", "Game/Sport cannot be empty")
	}
	if len([]rune(game)) < MinGameLength {
		return newError(ErrInvalidGame, "preferredGame", "Game/Sport must be at least 2 characters")
	}
	return nil
}

// Participant runs every field check and returns the first failure.
// Age 0 means unknown and is not checked.
func Participant(p *model.Participant) error {
	if err := Name(p.Name); err != nil {
		return err
	}
	if p.Age != 0 {
		if err := Age(p.Age); err != nil {
			return err
		}
	}
	if err := Email(p.Email); err != nil {
		return err
	}
	if err := PersonalityScore(p.PersonalityScore); err != nil {
		return err
	}
	if err := Game(p.PreferredGame); err != nil {
		return err
	}
	if !p.PreferredRole.Valid() {
		if _, err := Role(string(p.PreferredRole)); err != nil {
			return err
		}
		return newError(ErrInvalidRole, "preferredRole", "Role must use its canonical spelling")
	}
	return SkillLevel(p.SkillLevel)
}
