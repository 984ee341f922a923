package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout enforces a per-request deadline. When the handler outlives
// the deadline the client receives 504 and the request context is
// cancelled so repository calls unwind. The handler keeps running in
// its goroutine until it observes the cancellation; its late writes are
// swallowed by the guarded writer rather than corrupting the 504.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			guarded := &deadlineGuardedWriter{inner: w}
			done := make(chan struct{})

			go func() {
				next.ServeHTTP(guarded, r)
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				guarded.timeout()
			}
		})
	}
}

// deadlineGuardedWriter serializes the race between the handler
// goroutine and the timeout path. Whichever side writes first owns the
// response; the loser's writes are dropped.
type deadlineGuardedWriter struct {
	inner http.ResponseWriter

	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (w *deadlineGuardedWriter) Header() http.Header {
	return w.inner.Header()
}

func (w *deadlineGuardedWriter) WriteHeader(status int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut || w.written {
		return
	}
	w.written = true
	w.inner.WriteHeader(status)
}

func (w *deadlineGuardedWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !w.written {
		w.written = true
		w.inner.WriteHeader(http.StatusOK)
	}
	return w.inner.Write(b)
}

// timeout writes the 504 unless the handler already responded.
func (w *deadlineGuardedWriter) timeout() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.timedOut = true
	if w.written {
		return
	}
	w.inner.Header().Set("Content-Type", "application/json")
	w.inner.WriteHeader(http.StatusGatewayTimeout)
	_, _ = w.inner.Write([]byte(`{"error":"request timeout"}`))
}
