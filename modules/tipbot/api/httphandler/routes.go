package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1")

	r.Post("/operations/transaction", h.BuildTransaction)
	r.Post("/operations/prepare", h.PrepareTransaction)
	r.Post("/tips", h.SendTip)
	r.Get("/tips", h.GetTips)
	r.Get("/tips/:id", h.GetTip)
	r.Get("/node/head", h.GetNodeHead)
	return nil
}
