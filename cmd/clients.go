package cmd

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/internal/config"
	"github.com/gaze-network/tzbot/pkg/decimals"
	"github.com/gaze-network/tzbot/pkg/tezos/keychain"
	"github.com/gaze-network/tzbot/pkg/tezos/rpc"
)

func newNodeClient(conf config.Config) (*rpc.Client, error) {
	if !conf.Network.IsSupported() {
		return nil, errors.Wrapf(errs.Unsupported, "%q network is not supported", conf.Network.String())
	}
	client, err := rpc.New(conf.TezosNode.NodeURL(conf.Network), conf.TezosNode.RPCConfig())
	if err != nil {
		return nil, errors.Wrap(err, "invalid Tezos node configuration")
	}
	return client, nil
}

func loadKeychain(conf config.Config) (*keychain.Keychain, error) {
	kc, err := keychain.Load(conf.Keychain.Path)
	if err != nil {
		return nil, errors.Wrap(err, "can't load keychain")
	}
	return kc, nil
}

// parseAmount reads a mutez amount, or a tez amount when inTez is set.
func parseAmount(value string, inTez bool) (int64, error) {
	if inTez {
		mutez, err := decimals.TezToMutez(value)
		return mutez, errors.WithStack(err)
	}
	amount, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errs.InvalidArgument, "invalid mutez amount %q", value)
	}
	return amount, nil
}
