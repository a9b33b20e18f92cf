package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/siteit/leadbot/core/telegram/sender"
)

func TestEnqueueOutboundRunsInlineWithoutDispatcher(t *testing.T) {
	SetDispatcher(nil)

	ran := false
	err := EnqueueOutbound(context.Background(), "send.text", "sendMessage", func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if !ran {
		t.Fatal("without a dispatcher the call must run inline")
	}
}

func TestEnqueueOutboundDispatchesAsync(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{QueueSize: 4, Workers: 1})
	SetDispatcher(d)
	defer SetDispatcher(nil)

	done := make(chan struct{})
	err := EnqueueOutbound(context.Background(), "lead.deliver", "sendMessage", func() error {
		close(done)
		return nil
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queued job never executed")
	}
	d.Close()
}

func TestEnqueueOutboundFallsBackOnFullQueue(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{QueueSize: 1, Workers: 1, MaxDuration: time.Minute})
	SetDispatcher(d)
	defer SetDispatcher(nil)

	block := make(chan struct{})
	started := make(chan struct{})
	ctx := context.Background()

	// occupy the single worker, then the single queue slot
	if err := EnqueueOutbound(ctx, "a", "sendMessage", func() error {
		close(started)
		<-block
		return nil
	}); err != nil {
		t.Fatalf("enqueue worker job: %v", err)
	}
	<-started
	if err := EnqueueOutbound(ctx, "b", "sendMessage", func() error { return nil }); err != nil {
		t.Fatalf("enqueue queued job: %v", err)
	}

	ran := false
	if err := EnqueueOutbound(ctx, "c", "sendMessage", func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("enqueue on full queue: %v", err)
	}
	if !ran {
		t.Fatal("a rejected job must run inline")
	}

	close(block)
	d.Close()
}

func TestEnqueueOutboundFallsBackOnClosedQueue(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{QueueSize: 1, Workers: 1})
	d.Close()
	SetDispatcher(d)
	defer SetDispatcher(nil)

	ran := false
	if err := EnqueueOutbound(context.Background(), "send.text", "sendMessage", func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("enqueue on closed queue: %v", err)
	}
	if !ran {
		t.Fatal("after shutdown the call must run inline")
	}
}
