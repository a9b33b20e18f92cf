package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/siteit/leadbot/internal/models"
	"github.com/siteit/leadbot/pkg/fault"
)

// UserStore persists users met during the name stage.
type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Upsert inserts a user or refreshes the stored name and username.
func (s *UserStore) Upsert(ctx context.Context, id int64, username, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, name)
		VALUES ($1, NULLIF($2, ''), $3)
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, name = EXCLUDED.name`,
		id, username, name,
	)
	if err != nil {
		return fault.NewInternalError("upsert user", mapError(err))
	}
	return nil
}

// Get returns the stored user or fault.ErrNotFound.
func (s *UserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, username, name, created_at FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// DisplayName returns the stored name for a user, or "" when unknown.
func (s *UserStore) DisplayName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.db.GetContext(ctx, &name, `SELECT name FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", mapError(err)
	}
	return name, nil
}
