package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSource struct {
	ids   []int64
	err   error
	calls int
}

func (f *fakeSource) IDs(context.Context) ([]int64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

func newTestAuthorizer(src *fakeSource, ttl time.Duration) (*Authorizer, *time.Time) {
	a := New(src, ttl)
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return clock }
	return a, &clock
}

func TestIsAdminServesFromCacheWithinTTL(t *testing.T) {
	src := &fakeSource{ids: []int64{42}}
	a, _ := newTestAuthorizer(src, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := a.IsAdmin(42)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("check %d: 42 must be admin", i)
		}
	}
	if src.calls != 1 {
		t.Fatalf("source calls = %d, expected a single fetch", src.calls)
	}
	if ok, _ := a.IsAdmin(7); ok {
		t.Fatal("7 is not in the admin set")
	}
}

func TestIsAdminRefreshesAfterTTL(t *testing.T) {
	src := &fakeSource{ids: []int64{42}}
	a, clock := newTestAuthorizer(src, time.Minute)

	if _, err := a.IsAdmin(42); err != nil {
		t.Fatalf("warmup: %v", err)
	}
	src.ids = []int64{7}
	*clock = clock.Add(2 * time.Minute)

	ok, err := a.IsAdmin(7)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok {
		t.Fatal("expired cache must be refreshed from the source")
	}
	if src.calls != 2 {
		t.Fatalf("source calls = %d, expected 2", src.calls)
	}
}

func TestInvalidateForcesRefresh(t *testing.T) {
	src := &fakeSource{ids: []int64{42}}
	a, _ := newTestAuthorizer(src, time.Hour)

	if _, err := a.IsAdmin(42); err != nil {
		t.Fatalf("warmup: %v", err)
	}
	src.ids = []int64{42, 7}
	a.Invalidate()

	ok, err := a.IsAdmin(7)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok {
		t.Fatal("invalidated cache must refetch the admin set")
	}
}

func TestIsAdminServesStaleSetOnRefreshFailure(t *testing.T) {
	src := &fakeSource{ids: []int64{42}}
	a, clock := newTestAuthorizer(src, time.Minute)

	if _, err := a.IsAdmin(42); err != nil {
		t.Fatalf("warmup: %v", err)
	}
	src.err = errors.New("db down")
	*clock = clock.Add(2 * time.Minute)

	ok, err := a.IsAdmin(42)
	if err != nil {
		t.Fatalf("stale serve must not fail: %v", err)
	}
	if !ok {
		t.Fatal("stale set must keep answering while the source is down")
	}
}

func TestIsAdminFailsWithoutAnyCache(t *testing.T) {
	src := &fakeSource{err: errors.New("db down")}
	a, _ := newTestAuthorizer(src, time.Minute)

	if _, err := a.IsAdmin(42); err == nil {
		t.Fatal("no cache to fall back on, the error must surface")
	}
}
