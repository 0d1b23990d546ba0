package entity

import (
	"time"

	"github.com/google/uuid"
)

type TipStatus string

const (
	TipStatusPending   TipStatus = "pending"
	TipStatusSimulated TipStatus = "simulated"
	TipStatusInjected  TipStatus = "injected"
	TipStatusFailed    TipStatus = "failed"
)

// IsFinal reports whether no further transition is possible.
func (s TipStatus) IsFinal() bool {
	return s == TipStatusInjected || s == TipStatusFailed
}

// Tip is one transfer sent by the bot. Amounts are in mutez.
type Tip struct {
	Id            uuid.UUID
	Source        string
	Destination   string
	Amount        int64
	Fee           int64
	Counter       int64
	GasLimit      int64
	StorageLimit  int64
	Branch        string
	OperationHash string
	Status        TipStatus
	Error         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
