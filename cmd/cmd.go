package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/gaze-network/tzbot/internal/config"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var cmd = &cobra.Command{
	Use:           "tzbot",
	Long:          `Tezos tip bot. Builds, simulates, signs and injects tez transfers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.String("network", "mainnet", "network to connect to, E.g. `mainnet` or `ghostnet`")
	flags.String("node", "", "Tezos node RPC url, the public node of the network by default")
	flags.String("keychain", "./keychain.json", "path to the keychain file")

	// Bind flags to configuration
	config.BindPFlag("network", flags.Lookup("network"))
	config.BindPFlag("tezos_node.url", flags.Lookup("node"))
	config.BindPFlag("keychain.path", flags.Lookup("keychain"))

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		config := config.Parse(configFile)

		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	// Register sub-commands
	cmd.AddCommand(
		NewVersionCommand(),
		NewRunCommand(),
		NewBuildCommand(),
		NewSendCommand(),
		NewNodeCommand(),
		NewKeysCommand(),
		NewMigrateCommand(),
	)

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to execute command", err)
		os.Exit(1)
	}
}
