package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

type errorResponse = common.HttpResponse[any]

func respond(ctx *fiber.Ctx, status int, message string) error {
	return errors.WithStack(ctx.Status(status).JSON(errorResponse{Error: &message}))
}

// NewHTTPErrorHandler maps handler errors to status codes:
// public errors and invalid arguments to 400, errs.NotFound to 404, rejected operations to 422,
// node failures (errs.Unavailable) to 502 and anything else to 500.
func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			return respond(ctx, http.StatusBadRequest, e.Message())
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return respond(ctx, e.Code, e.Message)
		}

		switch {
		case errors.Is(err, errs.InvalidArgument):
			return respond(ctx, http.StatusBadRequest, "Bad Request")
		case errors.Is(err, errs.NotFound):
			return respond(ctx, http.StatusNotFound, "Not Found")
		case errors.Is(err, errs.Rejected):
			return respond(ctx, http.StatusUnprocessableEntity, "Operation rejected by the node")
		case errors.Is(err, errs.Unavailable):
			logger.WarnContext(ctx.UserContext(), "Tezos node unavailable",
				slogx.String("event", "api_node_unavailable"),
				slogx.Error(err),
			)
			return respond(ctx, http.StatusBadGateway, "Tezos node unavailable")
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error", err,
			slogx.String("event", "api_unhandled_error"),
		)
		return respond(ctx, http.StatusInternalServerError, "Internal Server Error")
	}
}
