package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/ariebrainware/colposcopy-api/config"
	"github.com/ariebrainware/colposcopy-api/migration"
	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(newMigrateUpCommand(), newMigrateStatusCommand())
	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			util.ConfigureLogger(cfg.AppEnv)

			db, err := config.ConnectDatabase()
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}

			n, err := migration.New(db).Up(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s).\n", n)
			return nil
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they have been applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			util.ConfigureLogger(cfg.AppEnv)

			db, err := config.ConnectDatabase()
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}

			statuses, err := migration.New(db).Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read migration status: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED AT")
			for _, s := range statuses {
				applied := "pending"
				if s.Applied && s.AppliedAt != nil {
					applied = s.AppliedAt.UTC().Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%03d\t%s\t%s\n", s.Version, s.Name, applied)
			}
			return w.Flush()
		},
	}
}
