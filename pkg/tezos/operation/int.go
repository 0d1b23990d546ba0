package operation

import (
	"bytes"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Int is an integer field of an operation. Tezos encodes every numeric operation
// field as a JSON string so that values wider than 53 bits survive any JSON parser,
// and Int keeps that rule in its codec rather than in struct tags.
type Int int64

func (i Int) Int64() int64 {
	return int64(i)
}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// MarshalJSON always emits a quoted decimal string.
func (i Int) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, i.String()), nil
}

// UnmarshalJSON accepts the quoted form used by nodes, and bare numbers for leniency.
func (i *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return errors.Wrapf(err, "invalid integer string %s", s)
		}
		s = unquoted
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid integer %q", s)
	}
	*i = Int(v)
	return nil
}
