package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type getTipRequest struct {
	Id string `params:"id"`
}

type getTipResponse = HttpResponse[tip]

func (h *HttpHandler) GetTip(ctx *fiber.Ctx) (err error) {
	var req getTipRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	id, err := uuid.Parse(req.Id)
	if err != nil {
		return errs.NewPublicError("invalid tip id")
	}

	result, err := h.usecase.GetTip(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return fiber.NewError(fiber.StatusNotFound, "tip not found")
		}
		return errors.Wrap(err, "error during GetTip")
	}

	resp := mapTip(result)
	return errors.WithStack(ctx.JSON(getTipResponse{
		Result: &resp,
	}))
}
