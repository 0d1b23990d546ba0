package cmd

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/internal/config"
	tipbotusecase "github.com/gaze-network/tzbot/modules/tipbot/usecase"
	"github.com/gaze-network/tzbot/pkg/decimals"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

type sendCmdOptions struct {
	Tez          bool
	Fee          int64
	GasMargin    int64
	StorageLimit int64
	DryRun       bool
}

func NewSendCommand() *cobra.Command {
	opts := &sendCmdOptions{}

	cmd := &cobra.Command{
		Use:   "send <key> <destination> <amount>",
		Short: "Simulate, sign and inject a transfer from a keychain key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.Tez, "tez", false, "amount is in tez instead of mutez")
	flags.Int64Var(&opts.Fee, "fee", 0, "fee in mutez")
	flags.Int64Var(&opts.GasMargin, "gas-margin", tipbotusecase.DefaultGasMargin, "gas added to the simulated consumption")
	flags.Int64Var(&opts.StorageLimit, "storage-limit", 0, "storage limit in bytes")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "only simulate, don't sign or inject")

	return cmd
}

func sendHandler(opts *sendCmdOptions, cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	conf := config.Load()

	amount, err := parseAmount(args[2], opts.Tez)
	if err != nil {
		return errors.WithStack(err)
	}
	kc, err := loadKeychain(conf)
	if err != nil {
		return errors.WithStack(err)
	}
	key, err := kc.Get(args[0])
	if err != nil {
		return errors.WithStack(err)
	}
	node, err := newNodeClient(conf)
	if err != nil {
		return errors.WithStack(err)
	}

	usecase := tipbotusecase.New(nil, node, nil, tipbotusecase.Config{
		Fee:          opts.Fee,
		GasMargin:    opts.GasMargin,
		StorageLimit: opts.StorageLimit,
	})

	transfer, err := usecase.Simulate(ctx, key.Address(), args[1], amount, opts.Fee)
	if err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "Simulated transfer",
		slogx.String("source", transfer.Source),
		slogx.String("destination", transfer.Destination),
		slogx.Stringer("amount_tez", decimals.MutezToTez(transfer.Amount)),
		slog.Int64("gas_limit", transfer.GasLimit),
	)
	if opts.DryRun {
		return printJSON(cmd, transfer)
	}

	opHash, err := usecase.Inject(ctx, key, transfer)
	if err != nil {
		return errors.WithStack(err)
	}
	logger.InfoContext(ctx, "Injected transfer", slogx.String("operation_hash", opHash))
	fmt.Fprintln(cmd.OutOrStdout(), opHash)
	return nil
}
