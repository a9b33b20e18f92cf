package notify

import (
	"context"
	"errors"
	"testing"
)

type recordingDeliverer struct {
	sent    []int64
	failFor map[int64]bool
}

func (d *recordingDeliverer) Deliver(_ context.Context, chatID int64, _ string) error {
	if d.failFor[chatID] {
		return errors.New("chat unreachable")
	}
	d.sent = append(d.sent, chatID)
	return nil
}

func TestFanOutDeliversToEveryGroup(t *testing.T) {
	d := &recordingDeliverer{}
	failed := FanOut(context.Background(), d, []int64{-100, -200, -300}, "#заявка")
	if failed != 0 {
		t.Fatalf("failed = %d, expected 0", failed)
	}
	if len(d.sent) != 3 {
		t.Fatalf("sent = %v, expected all three groups", d.sent)
	}
}

func TestFanOutContinuesPastFailures(t *testing.T) {
	d := &recordingDeliverer{failFor: map[int64]bool{-200: true}}
	failed := FanOut(context.Background(), d, []int64{-100, -200, -300}, "#заявка")
	if failed != 1 {
		t.Fatalf("failed = %d, expected 1", failed)
	}
	if len(d.sent) != 2 || d.sent[0] != -100 || d.sent[1] != -300 {
		t.Fatalf("sent = %v, expected the remaining groups in order", d.sent)
	}
}

func TestFanOutNoGroups(t *testing.T) {
	d := &recordingDeliverer{}
	if failed := FanOut(context.Background(), d, nil, "#заявка"); failed != 0 {
		t.Fatalf("failed = %d, expected 0 for an empty group list", failed)
	}
}
