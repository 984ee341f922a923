package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestHealthServer() *HealthServer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHealthServer("127.0.0.1:0", logger)
}

func decodeProbe(t *testing.T, rec *httptest.ResponseRecorder) probeResponse {
	t.Helper()
	var body probeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode probe body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealthServer_LivenessAlwaysOK(t *testing.T) {
	t.Parallel()

	h := newTestHealthServer()

	// Liveness does not depend on readiness.
	for _, ready := range []bool{false, true} {
		h.SetReady(ready)

		rec := httptest.NewRecorder()
		h.handleLiveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("ready=%v: status = %d, want 200", ready, rec.Code)
		}
		if body := decodeProbe(t, rec); body.Status != "ok" {
			t.Errorf("ready=%v: status field = %q", ready, body.Status)
		}
	}
}

func TestHealthServer_ReadinessFollowsSetReady(t *testing.T) {
	t.Parallel()

	h := newTestHealthServer()

	// Before the scheduler is up.
	rec := httptest.NewRecorder()
	h.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("initial status = %d, want 503", rec.Code)
	}
	if body := decodeProbe(t, rec); body.Status != "not ready" {
		t.Errorf("initial status field = %q", body.Status)
	}

	// Jobs registered.
	h.SetReady(true)
	rec = httptest.NewRecorder()
	h.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", rec.Code)
	}

	// Draining for shutdown.
	h.SetReady(false)
	rec = httptest.NewRecorder()
	h.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("draining status = %d, want 503", rec.Code)
	}
}

func TestHealthServer_ProbeContentType(t *testing.T) {
	t.Parallel()

	h := newTestHealthServer()

	rec := httptest.NewRecorder()
	h.handleLiveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHealthServer_StartStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	h := newTestHealthServer()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- h.Start(ctx)
	}()

	// Give ListenAndServe a moment to bind before cancelling.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Start returned %v, want http.ErrServerClosed", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}

func TestHealthServer_StartFailsOnBadAddress(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHealthServer("256.256.256.256:99999", logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := h.Start(ctx)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		t.Errorf("Start = %v, want a bind error", err)
	}
}
