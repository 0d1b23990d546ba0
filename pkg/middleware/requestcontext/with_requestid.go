package requestcontext

import (
	"context"

	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type requestIdKey struct{}

// GetRequestId returns the request id stored by WithRequestId, or empty string.
func GetRequestId(ctx context.Context) string {
	if id, ok := ctx.Value(requestIdKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestId reuses the id set by the requestid middleware or the client, generating one otherwise,
// and attaches it to the context logger.
func WithRequestId() Option {
	return func(ctx context.Context, c *fiber.Ctx) (context.Context, error) {
		requestId, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		if !ok || requestId == "" {
			requestId = c.Get(requestid.ConfigDefault.Header)
			if requestId == "" {
				requestId = uuid.NewString()
			}
			c.Set(requestid.ConfigDefault.Header, requestId)
			c.Locals(requestid.ConfigDefault.ContextKey, requestId)
		}

		ctx = context.WithValue(ctx, requestIdKey{}, requestId)
		ctx = logger.WithContext(ctx, slogx.String("requestId", requestId))
		return ctx, nil
	}
}

// WithNetwork tags the request logger with the network the server talks to.
func WithNetwork(network string) Option {
	return func(ctx context.Context, _ *fiber.Ctx) (context.Context, error) {
		return logger.WithContext(ctx, slogx.String("network", network)), nil
	}
}
