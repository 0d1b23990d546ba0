package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/modules/tipbot/internal/entity"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type TransferRequest struct {
	Destination string
	Amount      int64
	// Fee overrides the configured fee when set.
	Fee *int64
}

// Transfer sends a tip from the bot wallet and records it in the ledger.
// The recorded tip moves pending -> simulated -> injected, or to failed at the first error.
// On failure the tip is returned together with the error.
func (u *Usecase) Transfer(ctx context.Context, req TransferRequest) (*entity.Tip, error) {
	if u.wallet == nil || u.tipsDg == nil {
		return nil, errors.Wrap(errs.Unsupported, "tips require a wallet and a ledger")
	}
	fee := lo.FromPtrOr(req.Fee, u.conf.Fee)
	switch {
	case req.Amount <= 0:
		return nil, errors.Wrap(errs.InvalidArgument, "amount must be positive")
	case fee < 0:
		return nil, errors.Wrap(errs.InvalidArgument, "fee must not be negative")
	}
	if err := validateAddress(req.Destination); err != nil {
		return nil, errors.Wrap(err, "invalid destination")
	}

	tip := &entity.Tip{
		Id:          uuid.New(),
		Source:      u.wallet.Address(),
		Destination: req.Destination,
		Amount:      req.Amount,
		Fee:         fee,
		Status:      entity.TipStatusPending,
	}
	if err := u.tipsDg.CreateTip(ctx, tip); err != nil {
		return nil, errors.Wrap(err, "can't record tip")
	}
	ctx = logger.WithContext(ctx, slogx.Stringer("tip_id", tip.Id))

	simulated, err := u.Simulate(ctx, tip.Source, tip.Destination, tip.Amount, tip.Fee)
	if err != nil {
		return tip, u.failTip(ctx, tip, err)
	}
	tip.Counter = simulated.Counter
	tip.GasLimit = simulated.GasLimit
	tip.StorageLimit = simulated.StorageLimit
	tip.Branch = simulated.Branch
	tip.Status = entity.TipStatusSimulated
	if err := u.tipsDg.UpdateTip(ctx, tip); err != nil {
		return tip, errors.Wrap(err, "can't update tip")
	}

	opHash, err := u.Inject(ctx, u.wallet, simulated)
	if err != nil {
		return tip, u.failTip(ctx, tip, err)
	}
	tip.OperationHash = opHash
	tip.Status = entity.TipStatusInjected
	if err := u.tipsDg.UpdateTip(ctx, tip); err != nil {
		return tip, errors.Wrap(err, "can't update tip")
	}

	logger.InfoContext(ctx, "Injected tip",
		slogx.String("destination", tip.Destination),
		slogx.Int64("amount", tip.Amount),
		slogx.String("operation_hash", opHash),
	)
	return tip, nil
}

func (u *Usecase) failTip(ctx context.Context, tip *entity.Tip, cause error) error {
	tip.Status = entity.TipStatusFailed
	tip.Error = cause.Error()
	// the request may be gone, the ledger must still learn about the failure
	if err := u.tipsDg.UpdateTip(context.WithoutCancel(ctx), tip); err != nil {
		logger.ErrorContext(ctx, "Failed to mark tip as failed", err)
	}
	return errors.WithStack(cause)
}

// GetTip returns errs.NotFound if the tip does not exist.
func (u *Usecase) GetTip(ctx context.Context, id uuid.UUID) (*entity.Tip, error) {
	if u.tipsDg == nil {
		return nil, errors.Wrap(errs.Unsupported, "tips require a ledger")
	}
	tip, err := u.tipsDg.GetTipById(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "error during GetTipById")
	}
	return tip, nil
}

func (u *Usecase) GetTips(ctx context.Context, source string, limit int32, offset int32) ([]*entity.Tip, error) {
	if u.tipsDg == nil {
		return nil, errors.Wrap(errs.Unsupported, "tips require a ledger")
	}
	tips, err := u.tipsDg.GetTipsBySource(ctx, source, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during GetTipsBySource")
	}
	return tips, nil
}

// Wallet returns the address tips are sent from, empty when no wallet is configured.
func (u *Usecase) Wallet() string {
	if u.wallet == nil {
		return ""
	}
	return u.wallet.Address()
}
