package httphandler

import (
	"time"

	"github.com/gaze-network/tzbot/common"
	"github.com/gaze-network/tzbot/modules/tipbot/internal/entity"
	"github.com/gaze-network/tzbot/modules/tipbot/usecase"
	"github.com/gaze-network/tzbot/pkg/decimals"
	"github.com/shopspring/decimal"
)

type HttpHandler struct {
	usecase *usecase.Usecase
	network common.Network
}

func New(network common.Network, usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
		network: network,
	}
}

type HttpResponse[T any] common.HttpResponse[T]

type tip struct {
	Id            string          `json:"id"`
	Source        string          `json:"source"`
	Destination   string          `json:"destination"`
	Amount        int64           `json:"amount"`
	AmountTez     decimal.Decimal `json:"amountTez"`
	Fee           int64           `json:"fee"`
	Counter       int64           `json:"counter"`
	GasLimit      int64           `json:"gasLimit"`
	StorageLimit  int64           `json:"storageLimit"`
	Branch        string          `json:"branch"`
	OperationHash string          `json:"operationHash"`
	Status        string          `json:"status"`
	Error         string          `json:"error,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func mapTip(src *entity.Tip) tip {
	return tip{
		Id:            src.Id.String(),
		Source:        src.Source,
		Destination:   src.Destination,
		Amount:        src.Amount,
		AmountTez:     decimals.MutezToTez(src.Amount),
		Fee:           src.Fee,
		Counter:       src.Counter,
		GasLimit:      src.GasLimit,
		StorageLimit:  src.StorageLimit,
		Branch:        src.Branch,
		OperationHash: src.OperationHash,
		Status:        string(src.Status),
		Error:         src.Error,
		CreatedAt:     src.CreatedAt,
		UpdatedAt:     src.UpdatedAt,
	}
}
