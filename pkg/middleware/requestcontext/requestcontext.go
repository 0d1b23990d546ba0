package requestcontext

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type response = common.HttpResponse[any]

// Option enriches the request context. Returning a requestcontextError aborts the request with its status.
type Option func(ctx context.Context, c *fiber.Ctx) (context.Context, error)

func New(opts ...Option) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var err error
		ctx := c.UserContext()
		for i, opt := range opts {
			ctx, err = opt(ctx, c)
			if err != nil {
				rErr := requestcontextError{}
				if errors.As(err, &rErr) {
					return c.Status(rErr.status).JSON(response{Error: &rErr.message})
				}

				logger.ErrorContext(ctx, "failed to extract request context", err,
					slog.String("event", "requestcontext/error"),
					slog.Int("optionIndex", i),
				)
				message := "internal server error"
				return c.Status(http.StatusInternalServerError).JSON(response{Error: &message})
			}
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}
