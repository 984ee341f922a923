package retry

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

// fastConfig keeps backoff waits in the low milliseconds.
func fastConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   10 * time.Millisecond,
		MaxDelay:       100 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func manifestFetchFailingUntil(successAt int, counter *int) func() error {
	return func() error {
		*counter++
		if *counter < successAt {
			return &HTTPError{StatusCode: 503, Message: "cdn edge draining"}
		}
		return nil
	}
}

func TestWithBackoff_FirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(), manifestFetchFailingUntil(1, &attempts))

	if err != nil {
		t.Errorf("WithBackoff = %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestWithBackoff_RecoversWithinBudget(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(), manifestFetchFailingUntil(3, &attempts))

	if err != nil {
		t.Errorf("WithBackoff = %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want recovery on the last attempt", attempts)
	}
}

func TestWithBackoff_BudgetExhausted(t *testing.T) {
	attempts := 0
	fetchErr := &HTTPError{StatusCode: 500, Message: "manifest endpoint down"}
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		return fetchErr
	})

	if err == nil {
		t.Fatal("WithBackoff = nil, want exhaustion error")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want the full budget", attempts)
	}
	if !errors.Is(err, fetchErr) {
		t.Errorf("err = %v, want the last fetch error wrapped", err)
	}
}

func TestWithBackoff_PermanentErrorStopsImmediately(t *testing.T) {
	attempts := 0
	badManifest := &HTTPError{StatusCode: 400, Message: "malformed manifest request"}
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		return badManifest
	})

	if err != badManifest {
		t.Errorf("err = %v, want the original error unwrapped", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, retrying a 400 wastes the budget", attempts)
	}
}

func TestWithBackoff_CancelDuringWait(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxAttempts = 5
	cfg.InitialDelay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := WithBackoff(ctx, cfg, func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return &HTTPError{StatusCode: 503, Message: "still draining"}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if attempts < 2 {
		t.Errorf("attempts = %d, want at least 2 before the cancel", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"500 from source", &HTTPError{StatusCode: 500}, true},
		{"502 from cdn", &HTTPError{StatusCode: 502}, true},
		{"503 from cdn", &HTTPError{StatusCode: 503}, true},
		{"429 rate limited", &HTTPError{StatusCode: 429}, true},
		{"408 request timeout", &HTTPError{StatusCode: 408}, true},
		{"400 bad request", &HTTPError{StatusCode: 400}, false},
		{"404 manifest gone", &HTTPError{StatusCode: 404}, false},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"timed out", syscall.ETIMEDOUT, true},
		{"network unreachable", syscall.ENETUNREACH, true},
		{"plain error", errors.New("manifest checksum mismatch"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestPresetConfigs(t *testing.T) {
	cases := []struct {
		name             string
		cfg              Config
		wantAttempts     int
		wantInitialDelay time.Duration
		wantMaxDelay     time.Duration
	}{
		{"default", DefaultConfig(), 3, time.Second, 30 * time.Second},
		{"manifest fetch", ManifestFetchConfig(), 5, time.Second, 30 * time.Second},
		{"db", DBConfig(), 3, 100 * time.Millisecond, time.Second},
		{"media probe", MediaProbeConfig(), 3, time.Second, 10 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.cfg.MaxAttempts != tc.wantAttempts {
				t.Errorf("MaxAttempts = %d, want %d", tc.cfg.MaxAttempts, tc.wantAttempts)
			}
			if tc.cfg.InitialDelay != tc.wantInitialDelay {
				t.Errorf("InitialDelay = %v, want %v", tc.cfg.InitialDelay, tc.wantInitialDelay)
			}
			if tc.cfg.MaxDelay != tc.wantMaxDelay {
				t.Errorf("MaxDelay = %v, want %v", tc.cfg.MaxDelay, tc.wantMaxDelay)
			}
			if tc.cfg.JitterFraction <= 0 {
				t.Error("preset disabled jitter")
			}
		})
	}
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 503, Message: "Service Unavailable"}
	if got := err.Error(); got != "HTTP 503: Service Unavailable" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNextDelay_ClampsAtMax(t *testing.T) {
	cfg := Config{MaxDelay: 100 * time.Millisecond, Multiplier: 10}

	got := nextDelay(50*time.Millisecond, cfg)
	if got != 100*time.Millisecond {
		t.Errorf("nextDelay = %v, want clamp at MaxDelay", got)
	}
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond

	seen := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		got := addJitter(base, 0.2)
		if got < base || got > time.Duration(float64(base)*1.2) {
			t.Errorf("addJitter = %v, want within [base, base*1.2]", got)
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Error("jitter produced identical delays across 10 runs")
	}

	if got := addJitter(base, 0); got != base {
		t.Errorf("addJitter with zero fraction = %v, want %v", got, base)
	}
}
