package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/pkg/tezos/rpc"
)

func (u *Usecase) GetNodeHead(ctx context.Context) (rpc.BlockHeader, error) {
	head, err := u.node.Head(ctx)
	if err != nil {
		return rpc.BlockHeader{}, errors.Wrap(err, "error during Head")
	}
	return head, nil
}
