package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/siteit/leadbot/internal/models"
	"github.com/siteit/leadbot/pkg/fault"
)

type fakeLoader struct {
	questions []models.Question
	err       error
	calls     int
}

func (f *fakeLoader) All(context.Context) ([]models.Question, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func testQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Key: "sphere", Content: "В какой сфере Вы работаете?"},
		{ID: 2, Key: "type", Content: "Товары или услуги?"},
		{ID: 5, Key: "delivery", Content: "Нужна ли доставка?"},
	}
}

func TestCacheLoadsOnce(t *testing.T) {
	loader := &fakeLoader{questions: testQuestions()}
	cache := NewCache(loader)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		q, err := cache.Node(ctx, 2)
		if err != nil {
			t.Fatalf("lookup %d: %v", i, err)
		}
		if q.Key != "type" {
			t.Fatalf("lookup %d: key = %s", i, q.Key)
		}
	}
	if loader.calls != 1 {
		t.Fatalf("loader calls = %d, expected a single load", loader.calls)
	}
}

func TestCacheLookups(t *testing.T) {
	cache := NewCache(&fakeLoader{questions: testQuestions()})
	ctx := context.Background()

	first, err := cache.First(ctx)
	if err != nil || first.Key != "sphere" {
		t.Fatalf("First = %v, %v", first, err)
	}

	byKey, err := cache.ByKey(ctx, "delivery")
	if err != nil || byKey.ID != 5 {
		t.Fatalf("ByKey = %v, %v", byKey, err)
	}

	// id order has a gap between 2 and 5
	next, err := cache.NextAfter(ctx, 2)
	if err != nil || next.ID != 5 {
		t.Fatalf("NextAfter(2) = %v, %v", next, err)
	}

	if _, err := cache.NextAfter(ctx, 5); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("NextAfter past the last node = %v, expected not found", err)
	}
	if _, err := cache.Node(ctx, 99); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("Node(99) = %v, expected not found", err)
	}
	if _, err := cache.ByKey(ctx, "billing"); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("ByKey(billing) = %v, expected not found", err)
	}
}

func TestCacheEmptySet(t *testing.T) {
	cache := NewCache(&fakeLoader{})
	if _, err := cache.First(context.Background()); !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("First on empty set = %v, expected not found", err)
	}
}

func TestCachePropagatesLoadError(t *testing.T) {
	loader := &fakeLoader{err: errors.New("db down")}
	cache := NewCache(loader)
	ctx := context.Background()

	if _, err := cache.Node(ctx, 1); err == nil {
		t.Fatal("load failure must surface")
	}
	// a failed load must not poison the cache
	loader.err = nil
	loader.questions = testQuestions()
	if _, err := cache.Node(ctx, 1); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}
