package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/siteit/leadbot/pkg/fault"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, fault.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("select user: %w", sql.ErrNoRows), fault.ErrNotFound},
		{"unique", &pq.Error{Code: "23505"}, fault.ErrUniqueViolation},
		{"foreign key", &pq.Error{Code: "23503"}, fault.ErrForeignKeyViolation},
	}
	for _, tc := range cases {
		got := mapError(tc.in)
		if tc.want == nil {
			if got != nil {
				t.Fatalf("%s: got %v", tc.name, got)
			}
			continue
		}
		if !errors.Is(got, tc.want) {
			t.Fatalf("%s: got %v, expected %v", tc.name, got, tc.want)
		}
	}
}

func TestMapErrorPassesThroughUnknown(t *testing.T) {
	in := errors.New("connection reset")
	if got := mapError(in); got != in {
		t.Fatalf("unknown errors must pass through, got %v", got)
	}
	other := &pq.Error{Code: "42P01"}
	if got := mapError(other); got != error(other) {
		t.Fatalf("unmapped pq codes must pass through, got %v", got)
	}
}
