package api

import (
	"github.com/gaze-network/tzbot/common"
	"github.com/gaze-network/tzbot/modules/tipbot/api/httphandler"
	"github.com/gaze-network/tzbot/modules/tipbot/usecase"
)

func NewHTTPHandler(network common.Network, usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(network, usecase)
}
