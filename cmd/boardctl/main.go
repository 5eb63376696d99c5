package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"task-board/internal/app"
	"task-board/internal/config"
)

// session is opened before every subcommand that needs the store.
type session struct {
	app *app.App
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	s := &session{}
	rootCmd := &cobra.Command{
		Use:           "boardctl",
		Short:         "Inspect and administer the week task board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadCLI()
			if err != nil {
				return err
			}
			// boardctl seeds only on request
			cfg.SeedDefaults = false
			a, err := app.Open(cmd.Context(), cfg, app.NewLogger(cfg.LogLevel))
			if err != nil {
				return err
			}
			s.app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if s.app == nil {
				return nil
			}
			return s.app.Close()
		},
	}

	rootCmd.AddCommand(weekCmd(s))
	rootCmd.AddCommand(proposeCmd(s))
	rootCmd.AddCommand(statusCmd(s))
	rootCmd.AddCommand(colorCmd(s))
	rootCmd.AddCommand(seedCmd(s))

	return rootCmd
}

func seedCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default statuses and colors into empty tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := s.app.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d statuses, %d colors\n", res.Statuses, res.Colors)
			return nil
		},
	}
}
