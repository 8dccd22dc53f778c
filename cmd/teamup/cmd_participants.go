package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	service "github.com/okian/teamup/internal/app"
	"github.com/okian/teamup/internal/display"
	"github.com/okian/teamup/internal/domain/model"
	"github.com/okian/teamup/internal/domain/validation"
)

func newParticipantsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participants",
		Short: "List or add participants",
	}
	cmd.AddCommand(newParticipantsListCmd(flags))
	cmd.AddCommand(newParticipantsAddCmd(flags))
	cmd.AddCommand(newParticipantsGenerateCmd(flags))
	return cmd
}

func newParticipantsListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the loaded participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				if err := s.loadRoster(ctx); err != nil {
					return err
				}
				ps := s.svc.Participants()
				fmt.Fprint(s.out, display.Participants(s.mode, ps))
				fmt.Fprintf(s.out, "\n%d participants\n", len(ps))
				return nil
			})
		},
	}
}

type addFlags struct {
	id    string
	name  string
	email string
	age   int
	game  string
	role  string
	skill int
	score int
}

func newParticipantsAddCmd(flags *rootFlags) *cobra.Command {
	af := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a participant and save the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				return runAdd(ctx, s, af)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&af.id, "id", "", "participant id (default: generated)")
	f.StringVar(&af.name, "name", "", "full name (required)")
	f.StringVar(&af.email, "email", "", "email address (required)")
	f.IntVar(&af.age, "age", 0, "age, 16-100 (0 = not given)")
	f.StringVar(&af.game, "game", "", "preferred game or sport (required)")
	f.StringVar(&af.role, "role", "", "preferred role: Strategist, Attacker, Defender, Supporter, Coordinator (required)")
	f.IntVar(&af.skill, "skill", 0, "skill level, 1-10 (required)")
	f.IntVar(&af.score, "score", 0, "personality score, 0-100 (required)")

	for _, name := range []string{"name", "email", "game", "role", "skill", "score"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runAdd(ctx context.Context, s *session, af *addFlags) error {
	// A missing roster file is fine here; the first add creates it.
	if err := s.loadRoster(ctx); err != nil && !errors.Is(err, service.ErrNoDataFile) {
		return err
	}

	role, err := validation.Role(af.role)
	if err != nil {
		return err
	}

	id := af.id
	if id == "" {
		id = uuid.NewString()
	}

	p := &model.Participant{
		ID:               id,
		Name:             af.name,
		Age:              af.age,
		Email:            af.email,
		PersonalityScore: af.score,
		PreferredGame:    af.game,
		PreferredRole:    role,
		SkillLevel:       af.skill,
	}
	if err := s.svc.AddParticipant(ctx, p); err != nil {
		return err
	}

	path, err := s.svc.SaveAllParticipants(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Added %s (%s, %s) and saved to %s\n", p.Name, p.ID, p.PersonalityType(), path)
	return nil
}

func newParticipantsGenerateCmd(flags *rootFlags) *cobra.Command {
	var count, size int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Add synthetic participants and save the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				if err := s.loadRoster(ctx); err != nil && !errors.Is(err, service.ErrNoDataFile) {
					return err
				}
				n, err := s.svc.GenerateParticipants(ctx, count, s.teamSize(size))
				if err != nil {
					return err
				}
				path, err := s.svc.SaveAllParticipants(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "Generated %d participants and saved to %s\n", n, path)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&count, "count", 100, "number of participants to generate")
	f.IntVar(&size, "size", 0, "team size the roster must support (default: config team_size)")

	return cmd
}
