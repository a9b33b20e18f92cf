// Package auth provides the admin authorization check: a read-through
// cache over the persisted admin set with a refresh TTL and explicit
// invalidation, injected wherever a privileged action is gated.
package auth

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/siteit/leadbot/core/logger"
)

// Source enumerates the authorized user ids.
type Source interface {
	IDs(ctx context.Context) ([]int64, error)
}

// Authorizer answers admin checks from a cached id set, refreshing from
// the Source once the TTL lapses or after an explicit Invalidate.
type Authorizer struct {
	source Source
	ttl    time.Duration

	mu        sync.RWMutex
	ids       map[int64]struct{}
	fetchedAt time.Time

	now func() time.Time
}

func New(source Source, ttl time.Duration) *Authorizer {
	return &Authorizer{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// IsAdmin reports whether userID belongs to the admin set. On a refresh
// failure the previous cached set keeps serving; the error is returned
// only when there is no cache to fall back on.
func (a *Authorizer) IsAdmin(userID int64) (bool, error) {
	a.mu.RLock()
	ids, fetchedAt := a.ids, a.fetchedAt
	a.mu.RUnlock()

	if ids != nil && a.now().Sub(fetchedAt) < a.ttl {
		_, ok := ids[userID]
		return ok, nil
	}

	fresh, err := a.refresh()
	if err != nil {
		if ids != nil {
			logger.Warn(context.Background(), "service.users", "auth.refresh",
				slog.String("status", "stale"),
				slog.String("err", err.Error()),
			)
			_, ok := ids[userID]
			return ok, nil
		}
		return false, err
	}
	_, ok := fresh[userID]
	return ok, nil
}

// Invalidate drops the cached set; the next check refreshes from the Source.
func (a *Authorizer) Invalidate() {
	a.mu.Lock()
	a.ids = nil
	a.fetchedAt = time.Time{}
	a.mu.Unlock()
}

func (a *Authorizer) refresh() (map[int64]struct{}, error) {
	list, err := a.source.IDs(context.Background())
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]struct{}, len(list))
	for _, id := range list {
		ids[id] = struct{}{}
	}
	a.mu.Lock()
	a.ids = ids
	a.fetchedAt = a.now()
	a.mu.Unlock()
	return ids, nil
}
