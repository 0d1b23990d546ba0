// Package operation assembles Tezos transaction operations in the JSON shape
// expected by the node RPCs (run_operation, forge, preapply).
//
// Building is pure: no node access, no signing. Signatures are produced elsewhere
// and passed back in with [WithSignature].
package operation

// KindTransaction is the only content kind produced by this package.
const KindTransaction = "transaction"

// Defaults applied when the matching option is not given.
const (
	DefaultCounter      = 0
	DefaultFee          = 0
	DefaultGasLimit     = 10600
	DefaultStorageLimit = 0
)

// Envelope is an operation ready to be simulated, forged or (once signed) preapplied.
// It is a value: the With* methods return modified copies.
type Envelope struct {
	// Protocol is only set for endpoints that pin the protocol, such as preapply.
	Protocol  string               `json:"protocol,omitempty"`
	Branch    string               `json:"branch"`
	Contents  []TransactionContent `json:"contents"`
	Signature string               `json:"signature,omitempty"`
}

// TransactionContent is a single "transaction" entry of an operation.
type TransactionContent struct {
	Kind         string `json:"kind"`
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	Amount       Int    `json:"amount"`
	Fee          Int    `json:"fee"`
	Counter      Int    `json:"counter"`
	GasLimit     Int    `json:"gas_limit"`
	StorageLimit Int    `json:"storage_limit"`
}

// Transaction returns the only content of the envelope.
func (e Envelope) Transaction() TransactionContent {
	if len(e.Contents) == 0 {
		return TransactionContent{}
	}
	return e.Contents[0]
}

// IsSigned reports whether a signature has been attached.
func (e Envelope) IsSigned() bool {
	return e.Signature != ""
}

// WithSignature returns a copy of e carrying signature.
func (e Envelope) WithSignature(signature string) Envelope {
	e.Contents = append([]TransactionContent(nil), e.Contents...)
	e.Signature = signature
	return e
}

// WithProtocol returns a copy of e pinned to protocol.
func (e Envelope) WithProtocol(protocol string) Envelope {
	e.Contents = append([]TransactionContent(nil), e.Contents...)
	e.Protocol = protocol
	return e
}
