package rpc

import (
	"time"

	"github.com/gaze-network/tzbot/pkg/tezos/operation"
)

// BlockHeader is the subset of /blocks/<id>/header used by the bot.
type BlockHeader struct {
	Hash        string    `json:"hash"`
	ChainID     string    `json:"chain_id"`
	Protocol    string    `json:"protocol"`
	Level       int64     `json:"level"`
	Predecessor string    `json:"predecessor"`
	Timestamp   time.Time `json:"timestamp"`
}

type Protocols struct {
	Protocol     string `json:"protocol"`
	NextProtocol string `json:"next_protocol"`
}

// Constants are the protocol constants needed to size operations.
type Constants struct {
	BlocksPerCycle               int64         `json:"blocks_per_cycle"`
	HardGasLimitPerOperation     operation.Int `json:"hard_gas_limit_per_operation"`
	HardGasLimitPerBlock         operation.Int `json:"hard_gas_limit_per_block"`
	HardStorageLimitPerOperation operation.Int `json:"hard_storage_limit_per_operation"`
	CostPerByte                  operation.Int `json:"cost_per_byte"`
	OriginationSize              int64         `json:"origination_size"`
}

// NodeError is one entry of the error list returned by the node.
type NodeError struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// OperationResult is the node's view of an operation after run_operation or preapply.
type OperationResult struct {
	Contents  []ContentResult `json:"contents"`
	Signature string          `json:"signature,omitempty"`
}

type ContentResult struct {
	Kind         string          `json:"kind"`
	Source       string          `json:"source"`
	Destination  string          `json:"destination"`
	Amount       operation.Int   `json:"amount"`
	Fee          operation.Int   `json:"fee"`
	Counter      operation.Int   `json:"counter"`
	GasLimit     operation.Int   `json:"gas_limit"`
	StorageLimit operation.Int   `json:"storage_limit"`
	Metadata     ContentMetadata `json:"metadata"`
}

type ContentMetadata struct {
	OperationResult ApplyResult `json:"operation_result"`
}

// Operation statuses reported by the node.
const (
	StatusApplied     = "applied"
	StatusFailed      = "failed"
	StatusSkipped     = "skipped"
	StatusBacktracked = "backtracked"
)

type ApplyResult struct {
	Status              string        `json:"status"`
	ConsumedGas         operation.Int `json:"consumed_gas"`
	ConsumedMilligas    operation.Int `json:"consumed_milligas"`
	StorageSize         operation.Int `json:"storage_size"`
	PaidStorageSizeDiff operation.Int `json:"paid_storage_size_diff"`
	Errors              []NodeError   `json:"errors,omitempty"`
}

// IsApplied reports whether the node applied the operation.
func (r ApplyResult) IsApplied() bool {
	return r.Status == StatusApplied
}

// Gas returns the consumed gas, rounding milligas up when the node only reports milligas.
func (r ApplyResult) Gas() int64 {
	if r.ConsumedMilligas > 0 {
		return (r.ConsumedMilligas.Int64() + 999) / 1000
	}
	return r.ConsumedGas.Int64()
}

// Result returns the apply result of the first content, the only one for single transactions.
func (o OperationResult) Result() (ContentResult, bool) {
	if len(o.Contents) == 0 {
		return ContentResult{}, false
	}
	return o.Contents[0], true
}
