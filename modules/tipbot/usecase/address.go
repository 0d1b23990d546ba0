package usecase

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/trilitech/tzgo/tezos"
)

func validateAddress(address string) error {
	if address == "" {
		return errors.Wrap(errs.InvalidArgument, "address is required")
	}
	if _, err := tezos.ParseAddress(address); err != nil {
		return errors.Wrapf(errs.InvalidArgument, "malformed address %q", address)
	}
	return nil
}
