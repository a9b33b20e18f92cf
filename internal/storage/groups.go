package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/siteit/leadbot/internal/models"
	"github.com/siteit/leadbot/pkg/fault"
)

// GroupStore persists group chats and their mailing membership.
type GroupStore struct {
	db *sqlx.DB
}

func NewGroupStore(db *sqlx.DB) *GroupStore {
	return &GroupStore{db: db}
}

// Upsert registers a group, toggling is_mailing on re-registration.
func (s *GroupStore) Upsert(ctx context.Context, id int64, title string, mailing bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO groups (id, title, is_mailing)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, is_mailing = EXCLUDED.is_mailing`,
		id, title, mailing,
	)
	if err != nil {
		return fault.NewInternalError("upsert group", mapError(err))
	}
	return nil
}

// SetMailing flips mailing membership for a known group.
func (s *GroupStore) SetMailing(ctx context.Context, id int64, mailing bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE groups SET is_mailing = $2 WHERE id = $1`, id, mailing)
	if err != nil {
		return fault.NewInternalError("set group mailing", mapError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fault.ErrNotFound
	}
	return nil
}

// MailingIDs returns the ids of every group flagged for report delivery.
func (s *GroupStore) MailingIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.db.SelectContext(ctx, &ids,
		`SELECT id FROM groups WHERE is_mailing ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	return ids, nil
}

// All returns every known group.
func (s *GroupStore) All(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.SelectContext(ctx, &groups,
		`SELECT id, title, is_mailing, created_at FROM groups ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	return groups, nil
}
