// Package repository reads and writes participants and teams as CSV files.
package repository

import (
	"context"

	"github.com/okian/teamup/internal/domain/model"
)

// Column headers.
var (
	ParticipantHeader = []string{ //nolint:gochecknoglobals // fixed file format
		"ID", "Name", "Email", "PreferredGame", "SkillLevel", "PreferredRole", "PersonalityScore", "PersonalityType",
	}
	TeamHeader = []string{ //nolint:gochecknoglobals // fixed file format
		"TeamID", "TeamName", "ParticipantID", "Name", "Email", "PreferredGame", "SkillLevel", "PreferredRole",
		"PersonalityScore", "PersonalityType",
	}
)

// Store moves participants and teams across the file boundary.
type Store interface {
	// ReadParticipants loads every valid row. Invalid rows are skipped.
	ReadParticipants(ctx context.Context, path string) ([]*model.Participant, error)

	// WriteParticipants replaces the file at path.
	WriteParticipants(ctx context.Context, path string, participants []*model.Participant) error

	// WriteTeams replaces the file at path with one row per member.
	WriteTeams(ctx context.Context, path string, teams []*model.Team) error

	// ValidateFile reports whether path is an existing regular file.
	ValidateFile(path string) bool
}
