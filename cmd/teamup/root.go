package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// rootFlags are shared by every subcommand.
type rootFlags struct {
	config string
	file   string
	format string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "teamup",
		Short: "Form teams from a participant roster",
		Long: "teamup assigns participants to fixed-size teams with a balanced, skill-based\n" +
			"or role-based heuristic while keeping one or two leaders on every team.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "YAML config file (overrides TEAMUP_CONFIG)")
	pf.StringVar(&flags.file, "file", "", "participant CSV to load instead of the data dir files")
	pf.StringVar(&flags.format, "format", "ascii", "table format: ascii or markdown")

	root.AddCommand(newParticipantsCmd(flags))
	root.AddCommand(newFormCmd(flags))
	root.AddCommand(newCompareCmd(flags))

	return root
}
