package http

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// stubCleaner counts sweep invocations, pretending each sweep evicted
// two idle download keys.
type stubCleaner struct {
	sweeps atomic.Int32
}

func (s *stubCleaner) Cleanup() int {
	s.sweeps.Add(1)
	return 2
}

func (s *stubCleaner) Len() int { return 7 }

func TestStartRateLimitCleanup_SweepsOnEachTick(t *testing.T) {
	t.Parallel()

	cleaner := &stubCleaner{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		StartRateLimitCleanup(ctx, cleaner, 10*time.Millisecond, "download")
		close(done)
	}()

	// Wait for at least two sweeps so we know the ticker keeps firing.
	deadline := time.After(3 * time.Second)
	for cleaner.sweeps.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("only %d sweeps before deadline, want >= 2", cleaner.sweeps.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("cleanup loop did not stop after context cancellation")
	}
}

func TestStartRateLimitCleanup_StopsWithoutSweeping(t *testing.T) {
	t.Parallel()

	cleaner := &stubCleaner{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		// Interval far beyond the test's lifetime: the loop must exit on
		// the already-cancelled context, not on a tick.
		StartRateLimitCleanup(ctx, cleaner, time.Hour, "download")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("cleanup loop did not observe the cancelled context")
	}

	if got := cleaner.sweeps.Load(); got != 0 {
		t.Errorf("sweeps = %d, want 0 before the first tick", got)
	}
}
