package state

import (
	"testing"
	"time"
)

func newTestManager(ttl time.Duration) (*memoryManager, *time.Time) {
	m := NewMemoryManager(ttl).(*memoryManager)
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	return m, &clock
}

func TestStateRoundTrip(t *testing.T) {
	m, _ := newTestManager(0)

	if st := m.GetState(1); st != StateIdle {
		t.Fatalf("fresh user state = %s, expected idle", st)
	}
	m.SetState(1, State("interview:name"))
	if st := m.GetState(1); st != State("interview:name") {
		t.Fatalf("state = %s", st)
	}
	if !m.InProgress(1) {
		t.Fatal("user with an active state must be in progress")
	}
	m.ClearState(1)
	if m.InProgress(1) {
		t.Fatal("cleared state must read as idle")
	}
}

func TestTempDataRoundTrip(t *testing.T) {
	m, _ := newTestManager(0)

	m.SetTemp(1, "conversation", int64(77))
	if v, ok := m.GetTempInt64(1, "conversation"); !ok || v != 77 {
		t.Fatalf("temp = %v %v", v, ok)
	}
	m.ClearTemp(1, "conversation")
	if _, ok := m.GetTemp(1, "conversation"); ok {
		t.Fatal("cleared key must be gone")
	}
}

func TestSessionExpiresAfterIdleTTL(t *testing.T) {
	m, clock := newTestManager(time.Hour)

	m.SetState(1, State("interview:question"))
	*clock = clock.Add(30 * time.Minute)
	if st := m.GetState(1); st != State("interview:question") {
		t.Fatalf("state before TTL = %s", st)
	}

	*clock = clock.Add(2 * time.Hour)
	if st := m.GetState(1); st != StateIdle {
		t.Fatalf("idle session past TTL must read as idle, got %s", st)
	}
	if _, ok := m.GetTemp(1, "conversation"); ok {
		t.Fatal("expired session must drop its temp data")
	}
}

func TestActivityPostponesExpiry(t *testing.T) {
	m, clock := newTestManager(time.Hour)

	m.SetState(1, State("interview:phone"))
	*clock = clock.Add(45 * time.Minute)
	m.SetTemp(1, "conversation", "touch") // refreshes last activity
	*clock = clock.Add(45 * time.Minute)

	if st := m.GetState(1); st != State("interview:phone") {
		t.Fatalf("touched session must survive, got %s", st)
	}
}

func TestSweepRemovesOnlyExpiredSessions(t *testing.T) {
	m, clock := newTestManager(time.Hour)

	m.SetState(1, State("interview:name"))
	*clock = clock.Add(2 * time.Hour)
	m.SetState(2, State("interview:name"))

	removed := m.Sweep(*clock)
	if removed != 1 {
		t.Fatalf("removed = %d, expected 1", removed)
	}
	if m.GetState(2) != State("interview:name") {
		t.Fatal("fresh session must survive the sweep")
	}
}

func TestSweepDisabledWithoutTTL(t *testing.T) {
	m, clock := newTestManager(0)

	m.SetState(1, State("interview:name"))
	*clock = clock.Add(240 * time.Hour)
	if removed := m.Sweep(*clock); removed != 0 {
		t.Fatalf("removed = %d, expiry is disabled", removed)
	}
	if m.GetState(1) != State("interview:name") {
		t.Fatal("session must persist with expiry disabled")
	}
}
