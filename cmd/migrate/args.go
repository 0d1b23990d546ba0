package migrate

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
)

type migrateCmdArgs struct {
	N int
}

func (a *migrateCmdArgs) ParseArgs(args []string) error {
	if len(args) > 0 {
		// assume args already validated by cobra to be len(args) <= 1
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrap(errs.InvalidArgument, "failed to parse N")
		}
		if n < 0 {
			return errors.Wrap(errs.InvalidArgument, "N must be a positive integer")
		}
		a.N = n
	}
	return nil
}
