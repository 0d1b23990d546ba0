package rpc

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/pkg/httpclient"
	"github.com/samber/lo"
)

// Error is a non-2xx answer from the node. It matches errs.Unavailable with errors.Is.
type Error struct {
	StatusCode int
	URL        string
	Body       string
	Errors     []NodeError
}

func (e *Error) Error() string {
	if len(e.Errors) > 0 {
		ids := lo.Map(e.Errors, func(item NodeError, _ int) string { return item.ID })
		return fmt.Sprintf("node responded %d from %s: %s", e.StatusCode, e.URL, strings.Join(ids, ", "))
	}
	return fmt.Sprintf("node responded %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// IDs returns the node error identifiers, e.g. "proto.019-PtParisB.contract.balance_too_low".
func (e *Error) IDs() []string {
	return lo.Map(e.Errors, func(item NodeError, _ int) string { return item.ID })
}

func newError(resp *httpclient.HttpResponse) error {
	body := string(resp.Body())
	rpcErr := &Error{
		StatusCode: resp.StatusCode(),
		URL:        resp.URL,
		Body:       body,
	}
	// error lists are JSON arrays; plain text bodies are kept as is
	var nodeErrors []NodeError
	if err := json.Unmarshal(resp.Body(), &nodeErrors); err == nil {
		rpcErr.Errors = nodeErrors
	}
	return errors.Mark(rpcErr, errs.Unavailable)
}
