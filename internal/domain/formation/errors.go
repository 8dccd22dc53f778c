package formation

import (
	"errors"
)

// Sentinel kinds for formation errors.
var (
	// ErrInsufficientInput covers every precondition failure of a formation run.
	ErrInsufficientInput = errors.New("insufficient input")
	// ErrLeaderConstraint reports a team outside the 1..2 leader bound.
	ErrLeaderConstraint = errors.New("leader constraint violated")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)
