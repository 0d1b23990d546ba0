package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/internal/config"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

func NewKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage keychain keys",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "generate <name>",
			Short: "Generate an ed25519 key and store it in the keychain",
			Args:  cobra.ExactArgs(1),
			RunE:  keysGenerateHandler,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List keychain keys and their addresses",
			Args:  cobra.NoArgs,
			RunE:  keysListHandler,
		},
	)
	return cmd
}

func keysGenerateHandler(cmd *cobra.Command, args []string) error {
	conf := config.Load()
	kc, err := loadKeychain(conf)
	if err != nil {
		return errors.WithStack(err)
	}
	key, err := kc.Generate(args[0])
	if err != nil {
		return errors.WithStack(err)
	}
	if err := kc.Save(); err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(cmd.Context(), "Generated key", slogx.String("name", key.Name()), slogx.String("keychain", conf.Keychain.Path))
	fmt.Fprintln(cmd.OutOrStdout(), key.Address())
	return nil
}

func keysListHandler(cmd *cobra.Command, _ []string) error {
	kc, err := loadKeychain(config.Load())
	if err != nil {
		return errors.WithStack(err)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, name := range kc.Names() {
		key, err := kc.Get(name)
		if err != nil {
			return errors.WithStack(err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, key.Address(), key.PublicKey())
	}
	return errors.WithStack(w.Flush())
}
