package postgres

import (
	"time"

	"github.com/gaze-network/tzbot/modules/tipbot/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func timeFromTimestamptz(src pgtype.Timestamptz) time.Time {
	if !src.Valid {
		return time.Time{}
	}
	return src.Time.UTC()
}

func mapTipModelToType(src tipModel) *entity.Tip {
	var id uuid.UUID
	if src.ID.Valid {
		id = uuid.UUID(src.ID.Bytes)
	}
	return &entity.Tip{
		Id:            id,
		Source:        src.Source,
		Destination:   src.Destination,
		Amount:        src.Amount,
		Fee:           src.Fee,
		Counter:       src.Counter,
		GasLimit:      src.GasLimit,
		StorageLimit:  src.StorageLimit,
		Branch:        src.Branch,
		OperationHash: src.OperationHash,
		Status:        entity.TipStatus(src.Status),
		Error:         src.Error,
		CreatedAt:     timeFromTimestamptz(src.CreatedAt),
		UpdatedAt:     timeFromTimestamptz(src.UpdatedAt),
	}
}

func mapTipTypeToModel(src *entity.Tip) tipModel {
	return tipModel{
		ID:            pgtype.UUID{Bytes: src.Id, Valid: src.Id != uuid.Nil},
		Source:        src.Source,
		Destination:   src.Destination,
		Amount:        src.Amount,
		Fee:           src.Fee,
		Counter:       src.Counter,
		GasLimit:      src.GasLimit,
		StorageLimit:  src.StorageLimit,
		Branch:        src.Branch,
		OperationHash: src.OperationHash,
		Status:        string(src.Status),
		Error:         src.Error,
		CreatedAt:     pgtype.Timestamptz{Time: src.CreatedAt, Valid: !src.CreatedAt.IsZero()},
		UpdatedAt:     pgtype.Timestamptz{Time: src.UpdatedAt, Valid: !src.UpdatedAt.IsZero()},
	}
}
