package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/internal/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type tipModel struct {
	ID            pgtype.UUID
	Source        string
	Destination   string
	Amount        int64
	Fee           int64
	Counter       int64
	GasLimit      int64
	StorageLimit  int64
	Branch        string
	OperationHash string
	Status        string
	Error         string
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

const tipColumns = `id, source, destination, amount, fee, counter, gas_limit, storage_limit, branch, operation_hash, status, error, created_at, updated_at`

const createTip = `INSERT INTO tips (id, source, destination, amount, fee, counter, gas_limit, storage_limit, branch, operation_hash, status, error)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING created_at, updated_at`

const updateTip = `UPDATE tips SET counter = $2, gas_limit = $3, storage_limit = $4, branch = $5, operation_hash = $6, status = $7, error = $8, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING updated_at`

const getTipById = `SELECT ` + tipColumns + ` FROM tips WHERE id = $1`

const getTipsBySource = `SELECT ` + tipColumns + ` FROM tips WHERE source = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`

func scanTip(row pgx.Row) (tipModel, error) {
	var m tipModel
	err := row.Scan(
		&m.ID,
		&m.Source,
		&m.Destination,
		&m.Amount,
		&m.Fee,
		&m.Counter,
		&m.GasLimit,
		&m.StorageLimit,
		&m.Branch,
		&m.OperationHash,
		&m.Status,
		&m.Error,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, errors.WithStack(err)
}

func queryTips(ctx context.Context, db postgres.Queryable, sql string, args ...any) ([]tipModel, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	var models []tipModel
	for rows.Next() {
		m, err := scanTip(rows)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		models = append(models, m)
	}
	return models, errors.WithStack(rows.Err())
}
