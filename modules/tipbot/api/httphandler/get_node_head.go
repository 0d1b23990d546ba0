package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type nodeHead struct {
	Network   string    `json:"network"`
	Hash      string    `json:"hash"`
	ChainID   string    `json:"chainId"`
	Protocol  string    `json:"protocol"`
	Level     int64     `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

type getNodeHeadResponse = HttpResponse[nodeHead]

func (h *HttpHandler) GetNodeHead(ctx *fiber.Ctx) (err error) {
	head, err := h.usecase.GetNodeHead(ctx.UserContext())
	if err != nil {
		return errors.Wrap(err, "error during GetNodeHead")
	}

	return errors.WithStack(ctx.JSON(getNodeHeadResponse{
		Result: &nodeHead{
			Network:   h.network.String(),
			Hash:      head.Hash,
			ChainID:   head.ChainID,
			Protocol:  head.Protocol,
			Level:     head.Level,
			Timestamp: head.Timestamp,
		},
	}))
}
