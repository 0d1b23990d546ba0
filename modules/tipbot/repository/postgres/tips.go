package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/modules/tipbot/datagateway"
	"github.com/gaze-network/tzbot/modules/tipbot/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

var _ datagateway.TipsDataGateway = (*Repository)(nil)

func (r *Repository) CreateTip(ctx context.Context, tip *entity.Tip) error {
	m := mapTipTypeToModel(tip)
	if !m.ID.Valid {
		return errors.Wrap(errs.InvalidArgument, "tip id is required")
	}
	var createdAt, updatedAt pgtype.Timestamptz
	if err := r.db.QueryRow(ctx, createTip,
		m.ID,
		m.Source,
		m.Destination,
		m.Amount,
		m.Fee,
		m.Counter,
		m.GasLimit,
		m.StorageLimit,
		m.Branch,
		m.OperationHash,
		m.Status,
		m.Error,
	).Scan(&createdAt, &updatedAt); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	tip.CreatedAt = timeFromTimestamptz(createdAt)
	tip.UpdatedAt = timeFromTimestamptz(updatedAt)
	return nil
}

func (r *Repository) UpdateTip(ctx context.Context, tip *entity.Tip) error {
	m := mapTipTypeToModel(tip)
	var updatedAt pgtype.Timestamptz
	if err := r.db.QueryRow(ctx, updateTip,
		m.ID,
		m.Counter,
		m.GasLimit,
		m.StorageLimit,
		m.Branch,
		m.OperationHash,
		m.Status,
		m.Error,
	).Scan(&updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.Wrapf(errs.NotFound, "tip %s", tip.Id)
		}
		return errors.Wrap(err, "error during exec")
	}
	tip.UpdatedAt = timeFromTimestamptz(updatedAt)
	return nil
}

func (r *Repository) GetTipById(ctx context.Context, id uuid.UUID) (*entity.Tip, error) {
	m, err := scanTip(r.db.QueryRow(ctx, getTipById, pgtype.UUID{Bytes: id, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return mapTipModelToType(m), nil
}

func (r *Repository) GetTipsBySource(ctx context.Context, source string, limit int32, offset int32) ([]*entity.Tip, error) {
	models, err := queryTips(ctx, r.db, getTipsBySource, source, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	return lo.Map(models, func(m tipModel, _ int) *entity.Tip {
		return mapTipModelToType(m)
	}), nil
}
