package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/siteit/leadbot/pkg/fault"
)

// AdminStore persists the set of users allowed to run privileged commands.
type AdminStore struct {
	db *sqlx.DB
}

func NewAdminStore(db *sqlx.DB) *AdminStore {
	return &AdminStore{db: db}
}

// Add registers a new admin. Adding an existing admin is not an error.
func (s *AdminStore) Add(ctx context.Context, id int64, username string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (id, username)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username`,
		id, username,
	)
	if err != nil {
		return fault.NewInternalError("add admin", mapError(err))
	}
	return nil
}

// Remove demotes an admin. Returns fault.ErrNotFound when the id is unknown.
func (s *AdminStore) Remove(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fault.NewInternalError("remove admin", mapError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.ErrNotFound
	}
	return nil
}

// IDs returns the ids of all registered admins.
func (s *AdminStore) IDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT id FROM admins ORDER BY id`); err != nil {
		return nil, mapError(err)
	}
	return ids, nil
}
