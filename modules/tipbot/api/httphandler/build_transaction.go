package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/pkg/tezos/operation"
	"github.com/gofiber/fiber/v2"
)

type transactionLimits struct {
	Counter      *int64 `json:"counter"`
	Fee          *int64 `json:"fee"`
	GasLimit     *int64 `json:"gasLimit"`
	StorageLimit *int64 `json:"storageLimit"`
}

func (l transactionLimits) validate() []error {
	var errList []error
	for name, value := range map[string]*int64{
		"counter":      l.Counter,
		"fee":          l.Fee,
		"gasLimit":     l.GasLimit,
		"storageLimit": l.StorageLimit,
	} {
		if value != nil && *value < 0 {
			errList = append(errList, errors.Newf("'%s' must not be negative", name))
		}
	}
	return errList
}

func (l transactionLimits) options() []operation.Option {
	var opts []operation.Option
	if l.Counter != nil {
		opts = append(opts, operation.WithCounter(*l.Counter))
	}
	if l.Fee != nil {
		opts = append(opts, operation.WithFee(*l.Fee))
	}
	if l.GasLimit != nil {
		opts = append(opts, operation.WithGasLimit(*l.GasLimit))
	}
	if l.StorageLimit != nil {
		opts = append(opts, operation.WithStorageLimit(*l.StorageLimit))
	}
	return opts
}

type buildTransactionRequest struct {
	transactionLimits
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Amount      int64  `json:"amount"`
	Branch      string `json:"branch"`
	Signature   string `json:"signature"`
	Protocol    string `json:"protocol"`
}

func (r buildTransactionRequest) Validate() error {
	var errList []error
	if r.Source == "" {
		errList = append(errList, errors.New("'source' is required"))
	}
	if r.Destination == "" {
		errList = append(errList, errors.New("'destination' is required"))
	}
	if r.Branch == "" {
		errList = append(errList, errors.New("'branch' is required"))
	}
	if r.Amount < 0 {
		errList = append(errList, errors.New("'amount' must not be negative"))
	}
	errList = append(errList, r.validate()...)
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type buildTransactionResponse = HttpResponse[operation.Envelope]

// BuildTransaction assembles an operation envelope from the request alone, without asking the node.
func (h *HttpHandler) BuildTransaction(ctx *fiber.Ctx) (err error) {
	var req buildTransactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.NewPublicError("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	opts := append(req.options(), operation.WithSignature(req.Signature), operation.WithProtocol(req.Protocol))
	envelope, err := operation.Build(req.Source, req.Destination, req.Amount, req.Branch, opts...)
	if err != nil {
		return errors.Wrap(err, "error during Build")
	}

	return errors.WithStack(ctx.JSON(buildTransactionResponse{
		Result: &envelope,
	}))
}
