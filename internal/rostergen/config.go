package rostergen

import "errors"

// Config holds configuration for roster generation.
type Config struct {
	Count    int // Number of participants to generate
	TeamSize int // Team size the roster must be formable with
	Workers  int // Number of concurrent generators
}

var (
	ErrInvalidCount    = errors.New("count must be at least the team size")
	ErrInvalidTeamSize = errors.New("team size must be at least 3")
)
