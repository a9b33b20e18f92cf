// Package storage holds the sqlx repositories over the bot's relational
// schema: users, admins, groups and the questionnaire nodes.
package storage

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/siteit/leadbot/pkg/fault"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError converts driver errors into the shared fault sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fault.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return fault.ErrUniqueViolation
		case pgForeignKeyViolation:
			return fault.ErrForeignKeyViolation
		}
	}
	return err
}
