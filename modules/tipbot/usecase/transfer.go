package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/gaze-network/tzbot/pkg/tezos/keychain"
	"github.com/gaze-network/tzbot/pkg/tezos/operation"
	"github.com/gaze-network/tzbot/pkg/tezos/rpc"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// simulationSignature is a well-formed signature for run_operation, which does not check it.
const simulationSignature = "edsigtXomBKi5CTRf5cjATJWSyaRvhfYNHqSUGrn4SdbYRcGwQrUGjzEfQDTuqHhuA8b2d8NarZjz8TRf65WkpQmo423BtomS8Q"

// SimulatedTransfer is a transaction the node accepted in simulation, sized and ready to sign.
type SimulatedTransfer struct {
	Source       string
	Destination  string
	Amount       int64
	Fee          int64
	Counter      int64
	GasLimit     int64
	StorageLimit int64
	ConsumedGas  int64
	Branch       string
	Protocol     string
	ChainID      string
}

func (s *SimulatedTransfer) options() []operation.Option {
	return []operation.Option{
		operation.WithCounter(s.Counter),
		operation.WithFee(s.Fee),
		operation.WithGasLimit(s.GasLimit),
		operation.WithStorageLimit(s.StorageLimit),
	}
}

type chainState struct {
	branch    string
	counter   int64
	chainID   string
	protocols rpc.Protocols
	constants rpc.Constants
}

func (u *Usecase) chainState(ctx context.Context, source string) (chainState, error) {
	var state chainState
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		state.branch, err = u.node.HeadHash(gctx)
		return errors.WithStack(err)
	})
	group.Go(func() (err error) {
		state.counter, err = u.node.Counter(gctx, source)
		return errors.WithStack(err)
	})
	group.Go(func() (err error) {
		state.chainID, err = u.node.ChainID(gctx)
		return errors.WithStack(err)
	})
	group.Go(func() (err error) {
		state.protocols, err = u.node.Protocols(gctx)
		return errors.WithStack(err)
	})
	group.Go(func() (err error) {
		state.constants, err = u.node.Constants(gctx)
		return errors.WithStack(err)
	})
	if err := group.Wait(); err != nil {
		return chainState{}, errors.Wrap(err, "can't query node")
	}
	return state, nil
}

// Simulate runs the transfer on the node with the protocol's hard gas limit, then sizes the
// gas limit to the consumed gas plus the configured margin.
func (u *Usecase) Simulate(ctx context.Context, source, destination string, amount int64, fee int64) (*SimulatedTransfer, error) {
	if err := validateAddress(source); err != nil {
		return nil, errors.Wrap(err, "invalid source")
	}
	if err := validateAddress(destination); err != nil {
		return nil, errors.Wrap(err, "invalid destination")
	}
	if amount <= 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "amount must be positive")
	}
	if fee < 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "fee must not be negative")
	}

	state, err := u.chainState(ctx, source)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	transfer := &SimulatedTransfer{
		Source:       source,
		Destination:  destination,
		Amount:       amount,
		Fee:          fee,
		Counter:      state.counter + 1,
		GasLimit:     state.constants.HardGasLimitPerOperation.Int64(),
		StorageLimit: u.conf.StorageLimit,
		Branch:       state.branch,
		Protocol:     state.protocols.Protocol,
		ChainID:      state.chainID,
	}

	envelope, err := operation.Build(source, destination, amount, transfer.Branch, append(transfer.options(), operation.WithSignature(simulationSignature))...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result, err := u.node.RunOperation(ctx, envelope, transfer.ChainID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	applied, err := appliedResult(result)
	if err != nil {
		return nil, errors.Wrap(err, "simulation rejected")
	}

	transfer.ConsumedGas = applied.Gas()
	transfer.GasLimit = transfer.ConsumedGas + u.conf.GasMargin
	logger.DebugContext(ctx, "Simulated transfer",
		slogx.String("source", source),
		slogx.Int64("counter", transfer.Counter),
		slogx.Int64("consumed_gas", transfer.ConsumedGas),
	)
	return transfer, nil
}

// Inject forges, signs, preapplies and injects a simulated transfer, returning the operation hash.
func (u *Usecase) Inject(ctx context.Context, signer Signer, transfer *SimulatedTransfer) (string, error) {
	if signer.Address() != transfer.Source {
		return "", errors.Wrapf(errs.InvalidArgument, "signer %s can't sign for %s", signer.Address(), transfer.Source)
	}

	unsigned, err := operation.Build(transfer.Source, transfer.Destination, transfer.Amount, transfer.Branch, transfer.options()...)
	if err != nil {
		return "", errors.WithStack(err)
	}
	forged, err := u.node.Forge(ctx, unsigned)
	if err != nil {
		return "", errors.WithStack(err)
	}
	signature, err := signer.SignOperation(forged)
	if err != nil {
		return "", errors.WithStack(err)
	}

	results, err := u.node.Preapply(ctx, unsigned.WithProtocol(transfer.Protocol).WithSignature(signature))
	if err != nil {
		return "", errors.WithStack(err)
	}
	for _, result := range results {
		if _, err := appliedResult(result); err != nil {
			return "", errors.Wrap(err, "preapply rejected")
		}
	}

	signatureHex, err := keychain.SignatureHex(signature)
	if err != nil {
		return "", errors.WithStack(err)
	}
	opHash, err := u.node.Inject(ctx, forged+signatureHex)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return opHash, nil
}

func appliedResult(result rpc.OperationResult) (rpc.ApplyResult, error) {
	content, ok := result.Result()
	if !ok {
		return rpc.ApplyResult{}, errors.Wrap(errs.Rejected, "node returned no operation result")
	}
	applied := content.Metadata.OperationResult
	if !applied.IsApplied() {
		ids := lo.Map(applied.Errors, func(item rpc.NodeError, _ int) string { return item.ID })
		return rpc.ApplyResult{}, errors.Wrapf(errs.Rejected, "operation %s: %s", applied.Status, strings.Join(ids, ", "))
	}
	return applied, nil
}
