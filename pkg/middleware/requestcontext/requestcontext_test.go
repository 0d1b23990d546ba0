package requestcontext

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestId(t *testing.T) {
	app := fiber.New()
	app.Use(New(WithRequestId(), WithNetwork("ghostnet")))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestId(c.UserContext()))
	})

	t.Run("generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		id := resp.Header.Get(requestid.ConfigDefault.Header)
		assert.Len(t, id, 36)
	})
	t.Run("from client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.ConfigDefault.Header, "tip-123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "tip-123", resp.Header.Get(requestid.ConfigDefault.Header))
	})
}

func TestOptionError(t *testing.T) {
	app := fiber.New()
	app.Use(New(func(ctx context.Context, _ *fiber.Ctx) (context.Context, error) {
		return nil, requestcontextError{status: http.StatusForbidden, message: "not allowed to access"}
	}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, GetRequestId(context.Background()))
}
