package cmd

import (
	"github.com/gaze-network/tzbot/cmd/migrate"
	"github.com/gaze-network/tzbot/internal/config"
	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	// the ledger database url from config is used when --database is not given
	defaultDatabaseURL := func() string {
		return config.Load().Modules.Tipbot.Postgres.URL
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate tip ledger database schema",
	}
	cmd.AddCommand(
		migrate.NewMigrateUpCommand(defaultDatabaseURL),
		migrate.NewMigrateDownCommand(defaultDatabaseURL),
	)
	return cmd
}
