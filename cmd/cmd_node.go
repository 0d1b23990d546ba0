package cmd

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/internal/config"
	"github.com/gaze-network/tzbot/pkg/tezos/rpc"
	"github.com/spf13/cobra"
)

func NewNodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Query the Tezos node",
	}
	cmd.AddCommand(
		newNodeQueryCommand("head", "Show the head block header", cobra.NoArgs,
			func(ctx context.Context, node *rpc.Client, _ []string) (any, error) {
				return node.Head(ctx)
			}),
		newNodeQueryCommand("counter <address>", "Show the counter of an implicit account", cobra.ExactArgs(1),
			func(ctx context.Context, node *rpc.Client, args []string) (any, error) {
				return node.Counter(ctx, args[0])
			}),
		newNodeQueryCommand("constants", "Show the protocol constants", cobra.NoArgs,
			func(ctx context.Context, node *rpc.Client, _ []string) (any, error) {
				return node.Constants(ctx)
			}),
		newNodeQueryCommand("protocols", "Show the current and next protocol", cobra.NoArgs,
			func(ctx context.Context, node *rpc.Client, _ []string) (any, error) {
				return node.Protocols(ctx)
			}),
	)
	return cmd
}

func newNodeQueryCommand(use, short string, args cobra.PositionalArgs, query func(context.Context, *rpc.Client, []string) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := newNodeClient(config.Load())
			if err != nil {
				return errors.WithStack(err)
			}
			result, err := query(cmd.Context(), node, args)
			if err != nil {
				return errors.WithStack(err)
			}
			return printJSON(cmd, result)
		},
	}
}
