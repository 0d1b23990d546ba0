package usecase

import (
	"context"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/gaze-network/tzbot/modules/tipbot/datagateway"
	"github.com/gaze-network/tzbot/pkg/tezos/operation"
	"github.com/gaze-network/tzbot/pkg/tezos/rpc"
)

const DefaultGasMargin = 100

// NodeClient is the part of the Tezos node RPC the bot depends on. Implemented by *rpc.Client.
type NodeClient interface {
	HeadHash(ctx context.Context) (string, error)
	Head(ctx context.Context) (rpc.BlockHeader, error)
	ChainID(ctx context.Context) (string, error)
	Protocols(ctx context.Context) (rpc.Protocols, error)
	Constants(ctx context.Context) (rpc.Constants, error)
	Counter(ctx context.Context, address string) (int64, error)
	RunOperation(ctx context.Context, envelope operation.Envelope, chainID string) (rpc.OperationResult, error)
	Forge(ctx context.Context, envelope operation.Envelope) (string, error)
	Preapply(ctx context.Context, envelopes ...operation.Envelope) ([]rpc.OperationResult, error)
	Inject(ctx context.Context, signedHex string) (string, error)
}

var _ NodeClient = (*rpc.Client)(nil)

// Signer signs forged operations for one account. Implemented by *keychain.Key.
type Signer interface {
	Address() string
	SignOperation(forgedHex string) (string, error)
}

type Config struct {
	Fee          int64
	GasMargin    int64
	StorageLimit int64
}

type Usecase struct {
	tipsDg datagateway.TipsDataGateway
	node   NodeClient
	wallet Signer
	conf   Config
}

// New creates the tip bot usecase. tipsDg and wallet may be nil when only the node-facing
// operations (PrepareTransaction, Simulate, Inject) are used.
func New(tipsDg datagateway.TipsDataGateway, node NodeClient, wallet Signer, conf Config) *Usecase {
	conf.GasMargin = utils.Default(conf.GasMargin, DefaultGasMargin)
	return &Usecase{
		tipsDg: tipsDg,
		node:   node,
		wallet: wallet,
		conf:   conf,
	}
}
