package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/pkg/tezos/operation"
	"github.com/gofiber/fiber/v2"
)

type prepareTransactionRequest struct {
	transactionLimits
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Amount      int64  `json:"amount"`
}

func (r prepareTransactionRequest) Validate() error {
	var errList []error
	if r.Source == "" {
		errList = append(errList, errors.New("'source' is required"))
	}
	if r.Destination == "" {
		errList = append(errList, errors.New("'destination' is required"))
	}
	if r.Amount < 0 {
		errList = append(errList, errors.New("'amount' must not be negative"))
	}
	errList = append(errList, r.validate()...)
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type prepareTransactionResponse = HttpResponse[operation.Envelope]

// PrepareTransaction builds an unsigned envelope on the current head with the source's next counter.
func (h *HttpHandler) PrepareTransaction(ctx *fiber.Ctx) (err error) {
	var req prepareTransactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.NewPublicError("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	envelope, err := h.usecase.PrepareTransaction(ctx.UserContext(), req.Source, req.Destination, req.Amount, req.options()...)
	if err != nil {
		if errors.Is(err, errs.InvalidArgument) {
			return errs.WithPublicMessage(err, "invalid transaction")
		}
		return errors.Wrap(err, "error during PrepareTransaction")
	}

	return errors.WithStack(ctx.JSON(prepareTransactionResponse{
		Result: &envelope,
	}))
}
