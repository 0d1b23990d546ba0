package datagateway

import (
	"context"

	"github.com/gaze-network/tzbot/modules/tipbot/internal/entity"
	"github.com/google/uuid"
)

type TipsDataGateway interface {
	CreateTip(ctx context.Context, tip *entity.Tip) error
	// UpdateTip persists the mutable fields of tip (counter, gas, branch, operation hash, status, error). Returns errs.NotFound if the tip does not exist.
	UpdateTip(ctx context.Context, tip *entity.Tip) error
	// GetTipById returns errs.NotFound if the tip does not exist.
	GetTipById(ctx context.Context, id uuid.UUID) (*entity.Tip, error)
	// GetTipsBySource returns the tips sent from source, newest first.
	GetTipsBySource(ctx context.Context, source string, limit int32, offset int32) ([]*entity.Tip, error)
}
