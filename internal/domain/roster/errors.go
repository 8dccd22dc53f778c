package roster

import (
	"errors"
)

// Sentinel kinds for roster errors.
var (
	ErrNilParticipant = errors.New("participant is nil")
	ErrDuplicateEmail = errors.New("duplicate participant email")
	ErrDuplicateID    = errors.New("duplicate participant id")
	ErrRosterFull     = errors.New("roster is full")
)
