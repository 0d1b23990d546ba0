package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/modules/tipbot/usecase"
	"github.com/gaze-network/tzbot/pkg/decimals"
	"github.com/gofiber/fiber/v2"
)

type sendTipRequest struct {
	Destination string `json:"destination"`
	// Amount in mutez. Ignored when AmountTez is set.
	Amount    int64  `json:"amount"`
	AmountTez string `json:"amountTez"`
	Fee       *int64 `json:"fee"`
}

func (r sendTipRequest) Validate() error {
	var errList []error
	if r.Destination == "" {
		errList = append(errList, errors.New("'destination' is required"))
	}
	if r.AmountTez == "" && r.Amount <= 0 {
		errList = append(errList, errors.New("'amount' must be positive"))
	}
	if r.Fee != nil && *r.Fee < 0 {
		errList = append(errList, errors.New("'fee' must not be negative"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type sendTipResponse = HttpResponse[tip]

func (h *HttpHandler) SendTip(ctx *fiber.Ctx) (err error) {
	var req sendTipRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.NewPublicError("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	amount := req.Amount
	if req.AmountTez != "" {
		amount, err = decimals.TezToMutez(req.AmountTez)
		if err != nil {
			return errs.WithPublicMessage(err, "invalid 'amountTez'")
		}
	}

	result, err := h.usecase.Transfer(ctx.UserContext(), usecase.TransferRequest{
		Destination: req.Destination,
		Amount:      amount,
		Fee:         req.Fee,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.InvalidArgument):
			return errs.WithPublicMessage(err, "invalid tip")
		case errors.Is(err, errs.Unsupported):
			return fiber.NewError(fiber.StatusNotImplemented, "tips are not enabled")
		case errors.Is(err, errs.Rejected) && result != nil:
			// the failed tip is in the ledger, report it with the node's reason
			errMsg := result.Error
			resp := mapTip(result)
			return errors.WithStack(ctx.Status(fiber.StatusUnprocessableEntity).JSON(sendTipResponse{
				Error:  &errMsg,
				Result: &resp,
			}))
		}
		return errors.Wrap(err, "error during Transfer")
	}

	resp := mapTip(result)
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(sendTipResponse{
		Result: &resp,
	}))
}
