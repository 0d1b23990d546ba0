package operation

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
)

type options struct {
	counter      int64
	fee          int64
	gasLimit     int64
	storageLimit int64
	signature    string
	protocol     string
}

// Option overrides one of the builder defaults.
type Option func(*options)

// WithCounter sets the operation counter, usually the source's on-chain counter + 1.
func WithCounter(counter int64) Option {
	return func(o *options) { o.counter = counter }
}

func WithFee(fee int64) Option {
	return func(o *options) { o.fee = fee }
}

func WithGasLimit(gasLimit int64) Option {
	return func(o *options) { o.gasLimit = gasLimit }
}

func WithStorageLimit(storageLimit int64) Option {
	return func(o *options) { o.storageLimit = storageLimit }
}

// WithSignature attaches an externally computed signature. Empty means unsigned.
func WithSignature(signature string) Option {
	return func(o *options) { o.signature = signature }
}

// WithProtocol pins the envelope to a protocol hash. Empty means unpinned.
func WithProtocol(protocol string) Option {
	return func(o *options) { o.protocol = protocol }
}

// Build assembles a single-transaction envelope moving amount (mutez) from source to destination,
// anchored on branch.
//
// Only the arguments are checked here: address formats, balances, counters and signatures
// are the node's business.
func Build(source, destination string, amount int64, branch string, opts ...Option) (Envelope, error) {
	switch {
	case source == "":
		return Envelope{}, errors.Wrap(errs.InvalidArgument, "source is required")
	case destination == "":
		return Envelope{}, errors.Wrap(errs.InvalidArgument, "destination is required")
	case branch == "":
		return Envelope{}, errors.Wrap(errs.InvalidArgument, "branch is required")
	case amount < 0:
		return Envelope{}, errors.Wrapf(errs.InvalidArgument, "amount must not be negative, got %d", amount)
	}

	o := options{
		counter:      DefaultCounter,
		fee:          DefaultFee,
		gasLimit:     DefaultGasLimit,
		storageLimit: DefaultStorageLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return Envelope{
		Protocol: o.protocol,
		Branch:   branch,
		Contents: []TransactionContent{
			{
				Kind:         KindTransaction,
				Source:       source,
				Destination:  destination,
				Amount:       Int(amount),
				Fee:          Int(o.fee),
				Counter:      Int(o.counter),
				GasLimit:     Int(o.gasLimit),
				StorageLimit: Int(o.storageLimit),
			},
		},
		Signature: o.signature,
	}, nil
}

// MakeTransactionOperation is [Build] followed by JSON serialization.
func MakeTransactionOperation(source, destination string, amount int64, branch string, opts ...Option) ([]byte, error) {
	envelope, err := Build(source, destination, amount, branch, opts...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Marshal(envelope)
}

// Marshal serializes an envelope.
func Marshal(envelope Envelope) ([]byte, error) {
	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.Wrapf(errs.InternalError, "can't serialize operation: %v", err)
	}
	return data, nil
}
