package backend

import (
	"context"
	"testing"
	"time"
)

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	if !th.wait(ctx) {
		t.Fatalf("expected first wait to pass")
	}
	if !th.wait(ctx) {
		t.Fatalf("expected second wait to pass")
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, took %v", elapsed)
	}
}

func TestThrottleStopsOnCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !th.wait(ctx) {
		t.Fatalf("expected first wait to pass")
	}
	done := make(chan bool, 1)
	go func() { done <- th.wait(ctx) }()
	cancel()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected cancelled wait to report false")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("wait ignored cancellation")
	}
}

func TestThrottleWithoutInterval(t *testing.T) {
	th := newThrottle(0)
	if !th.wait(context.Background()) {
		t.Fatalf("expected zero interval to never block")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if th.wait(ctx) {
		t.Fatalf("expected cancelled context to report false")
	}
}
