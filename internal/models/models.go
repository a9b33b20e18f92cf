package models

import (
	"database/sql"
	"time"
)

// User is a person who talked to the bot at least once.
type User struct {
	ID        int64          `db:"id"`
	Username  sql.NullString `db:"username"`
	Name      string         `db:"name"`
	CreatedAt time.Time      `db:"created_at"`
}

// Admin may run privileged commands.
type Admin struct {
	ID        int64          `db:"id"`
	Username  sql.NullString `db:"username"`
	CreatedAt time.Time      `db:"created_at"`
}

// Group is a chat known to the bot. Groups with IsMailing set receive
// compiled lead reports.
type Group struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	IsMailing bool      `db:"is_mailing"`
	CreatedAt time.Time `db:"created_at"`
}

// Question is one node of the questionnaire. Key is a stable short name
// ("sphere", "type", ...) referenced by the skip-rule table; ID orders the
// sequential fallback traversal.
type Question struct {
	ID      int64  `db:"id"`
	Key     string `db:"key"`
	Content string `db:"content"`
	Answers []AnswerOption
}

// AnswerOption is one selectable answer of a question. Next, when set,
// is the id of the question to jump to; when null the engine falls through
// to the next question in id order.
type AnswerOption struct {
	ID         int64         `db:"id"`
	QuestionID int64         `db:"question_id"`
	Content    string        `db:"content"`
	Next       sql.NullInt64 `db:"next"`
}
