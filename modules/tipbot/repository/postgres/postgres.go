package postgres

import (
	"github.com/gaze-network/tzbot/internal/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db: db,
	}
}
