package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/teamup/internal/display"
	"github.com/okian/teamup/internal/domain/formation"
)

// exportDefault is the value --export takes without "=name".
const exportDefault = "default"

type formFlags struct {
	algorithm    string
	size         int
	export       string
	requireEqual bool
}

func newFormCmd(flags *rootFlags) *cobra.Command {
	ff := &formFlags{}

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Form teams and print them with statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				return runForm(ctx, s, ff)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&ff.algorithm, "algorithm", "", "balanced, skill or role (default: config algorithm)")
	f.IntVar(&ff.size, "size", 0, "team size, at least 3 (default: config team_size)")
	f.StringVar(&ff.export, "export", "", "write teams into the data dir; --export=<name> picks the file name")
	f.Lookup("export").NoOptDefVal = exportDefault
	f.BoolVar(&ff.requireEqual, "require-equal", false, "fail unless the roster divides evenly into teams")

	return cmd
}

func runForm(ctx context.Context, s *session, ff *formFlags) error {
	name := ff.algorithm
	if name == "" {
		name = s.cfg.Algorithm
	}
	algo, err := formation.ParseAlgorithm(name)
	if err != nil {
		return err
	}

	if err := s.loadRoster(ctx); err != nil {
		return err
	}

	size := s.teamSize(ff.size)
	if ff.requireEqual {
		if err := checkEqualTeams(len(s.svc.Participants()), size); err != nil {
			return err
		}
	}

	teams, err := s.svc.FormTeams(ctx, algo, size)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Formed %d %s teams of %d\n\n", len(teams), algo, size)
	fmt.Fprint(s.out, display.Teams(s.mode, teams))
	fmt.Fprintln(s.out)
	fmt.Fprint(s.out, display.Statistics(s.mode, s.svc.Statistics(teams)))

	if ff.export == "" {
		return nil
	}
	exportName := ff.export
	if exportName == exportDefault {
		exportName = ""
	}
	path, err := s.svc.ExportTeams(ctx, exportName)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nTeams exported to %s\n", path)
	return nil
}

// checkEqualTeams rejects sizes that would leave leftover participants and
// names the sizes that would not.
func checkEqualTeams(n, size int) error {
	if size > 0 && n%size == 0 {
		return nil
	}
	suggestions := formation.SuggestTeamSizes(n)
	if len(suggestions) == 0 {
		return fmt.Errorf("%d participants cannot be split into equal teams of %d; no equal split exists", n, size)
	}
	return fmt.Errorf("%d participants cannot be split into equal teams of %d; try --size %v", n, size, suggestions)
}
