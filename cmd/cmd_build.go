package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/pkg/tezos/operation"
	"github.com/spf13/cobra"
)

type buildCmdOptions struct {
	Counter      int64
	Fee          int64
	GasLimit     int64
	StorageLimit int64
	Signature    string
	Protocol     string
	Tez          bool
	Pretty       bool
}

func NewBuildCommand() *cobra.Command {
	opts := &buildCmdOptions{}

	cmd := &cobra.Command{
		Use:   "build <source> <destination> <amount> <branch>",
		Short: "Print the JSON of an unsigned transaction operation",
		Long:  `Builds a transaction operation offline. No node is contacted, so counter and limits default to zero.`,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.Counter, "counter", 0, "operation counter, the source's current counter + 1")
	flags.Int64Var(&opts.Fee, "fee", 0, "fee in mutez")
	flags.Int64Var(&opts.GasLimit, "gas-limit", 0, "gas limit")
	flags.Int64Var(&opts.StorageLimit, "storage-limit", 0, "storage limit in bytes")
	flags.StringVar(&opts.Signature, "signature", "", "attach a signature, E.g. `edsig...`")
	flags.StringVar(&opts.Protocol, "protocol", "", "attach a protocol hash, required by preapply")
	flags.BoolVar(&opts.Tez, "tez", false, "amount is in tez instead of mutez")
	flags.BoolVar(&opts.Pretty, "pretty", false, "indent the output")

	return cmd
}

func buildHandler(opts *buildCmdOptions, cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[2], opts.Tez)
	if err != nil {
		return errors.WithStack(err)
	}

	buildOpts := []operation.Option{
		operation.WithCounter(opts.Counter),
		operation.WithFee(opts.Fee),
		operation.WithGasLimit(opts.GasLimit),
		operation.WithStorageLimit(opts.StorageLimit),
	}
	if opts.Signature != "" {
		buildOpts = append(buildOpts, operation.WithSignature(opts.Signature))
	}
	if opts.Protocol != "" {
		buildOpts = append(buildOpts, operation.WithProtocol(opts.Protocol))
	}

	if !opts.Pretty {
		data, err := operation.MakeTransactionOperation(args[0], args[1], amount, args[3], buildOpts...)
		if err != nil {
			return errors.WithStack(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	envelope, err := operation.Build(args[0], args[1], amount, args[3], buildOpts...)
	if err != nil {
		return errors.WithStack(err)
	}
	return printJSON(cmd, envelope)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
