package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"log/slog"

	"github.com/siteit/leadbot/core/logger"
	"github.com/siteit/leadbot/internal/models"
	"github.com/siteit/leadbot/pkg/fault"
)

// QuestionStore reads the questionnaire nodes and their answer options.
type QuestionStore struct {
	db *sqlx.DB
}

func NewQuestionStore(db *sqlx.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

// All returns every question with its answer options attached,
// ordered by question id.
func (s *QuestionStore) All(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.SelectContext(ctx, &questions,
		`SELECT id, key, content FROM questions ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}

	var answers []models.AnswerOption
	err = s.db.SelectContext(ctx, &answers,
		`SELECT id, question_id, content, next FROM answers ORDER BY question_id, id`)
	if err != nil {
		return nil, mapError(err)
	}

	byQuestion := make(map[int64][]models.AnswerOption, len(questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	for i := range questions {
		questions[i].Answers = byQuestion[questions[i].ID]
	}
	return questions, nil
}

// QuestionLoader loads the full node set. *QuestionStore is the
// production implementation.
type QuestionLoader interface {
	All(ctx context.Context) ([]models.Question, error)
}

// Cache keeps the full node set resident for the process lifetime.
// It is populated lazily on first access and never refreshed, so
// authoring changes become visible only after a restart.
type Cache struct {
	store QuestionLoader

	mu     sync.RWMutex
	loaded bool
	byID   map[int64]*models.Question
	byKey  map[string]*models.Question
	ids    []int64
}

func NewCache(store QuestionLoader) *Cache {
	return &Cache{store: store}
}

func (c *Cache) ensure(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	start := time.Now()
	questions, err := c.store.All(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}
	c.byID = make(map[int64]*models.Question, len(questions))
	c.byKey = make(map[string]*models.Question, len(questions))
	c.ids = make([]int64, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		c.byID[q.ID] = q
		c.byKey[q.Key] = q
		c.ids = append(c.ids, q.ID)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	c.loaded = true

	logger.Debug(ctx, "service.questions", "cache.load",
		slog.String("status", "ok"),
		slog.Int("questions", len(questions)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

// Node returns the question with the given id, or fault.ErrNotFound.
// A lookup miss is the designed terminal signal for the dialog engine,
// never an error condition worth logging.
func (c *Cache) Node(ctx context.Context, id int64) (*models.Question, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.byID[id]
	if !ok {
		return nil, fault.ErrNotFound
	}
	return q, nil
}

// ByKey returns the question with the given stable key, or fault.ErrNotFound.
func (c *Cache) ByKey(ctx context.Context, key string) (*models.Question, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.byKey[key]
	if !ok {
		return nil, fault.ErrNotFound
	}
	return q, nil
}

// First returns the lowest-id question, or fault.ErrNotFound on an empty set.
func (c *Cache) First(ctx context.Context) (*models.Question, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.ids) == 0 {
		return nil, fault.ErrNotFound
	}
	return c.byID[c.ids[0]], nil
}

// NextAfter returns the question following id in id order,
// or fault.ErrNotFound when id is the last node.
func (c *Cache) NextAfter(ctx context.Context, id int64) (*models.Question, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := sort.Search(len(c.ids), func(i int) bool { return c.ids[i] > id })
	if i == len(c.ids) {
		return nil, fault.ErrNotFound
	}
	return c.byID[c.ids[i]], nil
}
