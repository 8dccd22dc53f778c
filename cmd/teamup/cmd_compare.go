package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/teamup/internal/display"
)

func newCompareCmd(flags *rootFlags) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every algorithm on the roster and compare their statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				if err := s.loadRoster(ctx); err != nil {
					return err
				}
				n := s.teamSize(size)
				results, err := s.svc.Compare(ctx, n)
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "Comparison for %d participants, teams of %d\n\n", len(s.svc.Participants()), n)
				fmt.Fprint(s.out, display.Comparison(s.mode, results))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "team size, at least 3 (default: config team_size)")

	return cmd
}
