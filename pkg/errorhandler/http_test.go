package errorhandler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorHandler(t *testing.T) {
	testcases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"public error", errs.NewPublicError("'amount' must be positive"), http.StatusBadRequest, "'amount' must be positive"},
		{"wrapped public error", errors.Wrap(errs.WithPublicMessage(errors.New("bad"), "validation error"), "handler"), http.StatusBadRequest, "validation error: bad"},
		{"fiber error", fiber.NewError(fiber.StatusNotFound, "tip not found"), http.StatusNotFound, "tip not found"},
		{"invalid argument", errors.Wrap(errs.InvalidArgument, "source is required"), http.StatusBadRequest, "Bad Request"},
		{"not found", errors.WithStack(errs.NotFound), http.StatusNotFound, "Not Found"},
		{"rejected", errors.Wrap(errs.Rejected, "operation failed"), http.StatusUnprocessableEntity, "Operation rejected by the node"},
		{"unavailable", errors.Mark(errors.New("connection refused"), errs.Unavailable), http.StatusBadGateway, "Tezos node unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: NewHTTPErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var decoded struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(body, &decoded))
			assert.Equal(t, tc.message, decoded.Error)
		})
	}
}
