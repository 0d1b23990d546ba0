package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/pkg/tezos/operation"
	"golang.org/x/sync/errgroup"
)

// PrepareTransaction builds an unsigned envelope anchored on the current head, using the
// source's next counter. opts are applied after the node values and may override them.
func (u *Usecase) PrepareTransaction(ctx context.Context, source, destination string, amount int64, opts ...operation.Option) (operation.Envelope, error) {
	if err := validateAddress(source); err != nil {
		return operation.Envelope{}, errors.Wrap(err, "invalid source")
	}
	if err := validateAddress(destination); err != nil {
		return operation.Envelope{}, errors.Wrap(err, "invalid destination")
	}

	var (
		branch  string
		counter int64
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		branch, err = u.node.HeadHash(gctx)
		return errors.WithStack(err)
	})
	group.Go(func() (err error) {
		counter, err = u.node.Counter(gctx, source)
		return errors.WithStack(err)
	})
	if err := group.Wait(); err != nil {
		return operation.Envelope{}, errors.Wrap(err, "can't query node")
	}

	envelope, err := operation.Build(source, destination, amount, branch, append([]operation.Option{operation.WithCounter(counter + 1)}, opts...)...)
	if err != nil {
		return operation.Envelope{}, errors.WithStack(err)
	}
	return envelope, nil
}
