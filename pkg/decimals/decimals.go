package decimals

import (
	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/shopspring/decimal"
)

// TezDecimals is the number of decimal places of tez. 1 tez = 1,000,000 mutez.
const TezDecimals = 6

var mutezPerTez = decimal.New(1, TezDecimals)

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// ToDecimal shifts an integer amount of the smallest unit by decimals places.
func ToDecimal(value int64, decimals int32) decimal.Decimal {
	return decimal.New(value, -decimals)
}

// MutezToTez converts mutez to tez.
func MutezToTez(mutez int64) decimal.Decimal {
	return ToDecimal(mutez, TezDecimals)
}

// TezToMutez parses a tez amount such as "1.5" into mutez.
// Amounts with more than 6 decimal places, negative amounts or amounts overflowing int64 are rejected.
func TezToMutez(tez string) (int64, error) {
	amount, err := decimal.NewFromString(tez)
	if err != nil {
		return 0, errors.Wrapf(errs.InvalidArgument, "invalid tez amount %q", tez)
	}
	if amount.IsNegative() {
		return 0, errors.Wrapf(errs.InvalidArgument, "negative tez amount %q", tez)
	}
	mutez := amount.Mul(mutezPerTez)
	if !mutez.Equal(mutez.Truncate(0)) {
		return 0, errors.Wrapf(errs.InvalidArgument, "tez amount %q has more than %d decimal places", tez, TezDecimals)
	}
	if !mutez.BigInt().IsInt64() {
		return 0, errors.Wrapf(errs.InvalidArgument, "tez amount %q is too large", tez)
	}
	return mutez.IntPart(), nil
}
