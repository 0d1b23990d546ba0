package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/modules/tipbot/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

const (
	defaultTipsLimit = 100
	maxTipsLimit     = 1000
)

type getTipsRequest struct {
	Source string `query:"source"`
	Limit  int32  `query:"limit"`
	Offset int32  `query:"offset"`
}

func (r getTipsRequest) Validate() error {
	var errList []error
	if r.Limit < 0 || r.Limit > maxTipsLimit {
		errList = append(errList, errors.Newf("'limit' must be between 0 and %d", maxTipsLimit))
	}
	if r.Offset < 0 {
		errList = append(errList, errors.New("'offset' must not be negative"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getTipsResult struct {
	Source string `json:"source"`
	List   []tip  `json:"list"`
}

type getTipsResponse = HttpResponse[getTipsResult]

// GetTips lists tips sent from source, the bot wallet by default.
func (h *HttpHandler) GetTips(ctx *fiber.Ctx) (err error) {
	var req getTipsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if req.Limit == 0 {
		req.Limit = defaultTipsLimit
	}
	if req.Source == "" {
		req.Source = h.usecase.Wallet()
	}
	if req.Source == "" {
		return errs.NewPublicError("'source' is required")
	}

	tips, err := h.usecase.GetTips(ctx.UserContext(), req.Source, req.Limit, req.Offset)
	if err != nil {
		if errors.Is(err, errs.Unsupported) {
			return fiber.NewError(fiber.StatusNotImplemented, "tips are not enabled")
		}
		return errors.Wrap(err, "error during GetTips")
	}

	return errors.WithStack(ctx.JSON(getTipsResponse{
		Result: &getTipsResult{
			Source: req.Source,
			List:   lo.Map(tips, func(item *entity.Tip, _ int) tip { return mapTip(item) }),
		},
	}))
}
