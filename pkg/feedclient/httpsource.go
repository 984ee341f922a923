package feedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// feedRequest is the wire format of a feed page request.
type feedRequest struct {
	Search      string `json:"search,omitempty"`
	Category    string `json:"category,omitempty"`
	PremiumOnly bool   `json:"is_premium,omitempty"`
	VideoOnly   bool   `json:"video_only,omitempty"`
	Sort        string `json:"sort"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
}

// feedEnvelope is the wire format of a feed page response.
type feedEnvelope[T any] struct {
	Data struct {
		Items      []T   `json:"items"`
		TotalCount int64 `json:"totalCount"`
		TotalPages int   `json:"totalPages"`
	} `json:"data"`
}

// StatusError reports a non-2xx response from the feed endpoint.
type StatusError struct {
	StatusCode int
}

// Error returns a formatted error message.
func (e *StatusError) Error() string {
	return fmt.Sprintf("feed endpoint returned status %d", e.StatusCode)
}

// maxErrorBodyBytes bounds how much of an error response body is drained
// before closing, so connections can be reused without buffering garbage.
const maxErrorBodyBytes = 4 << 10

// HTTPSourceConfig configures an HTTPSource.
type HTTPSourceConfig struct {
	// Endpoint is the absolute URL of the feed endpoint, e.g.
	// "https://api.example.com/feed". Required.
	Endpoint string
	// Client is the HTTP client to use. Defaults to a client with a
	// 15 second timeout.
	Client *http.Client
	// Breaker optionally short-circuits fetches while the endpoint is
	// unhealthy. See NewBreaker for settings that fit the controller.
	Breaker *gobreaker.CircuitBreaker
	// UserAgent is sent with every request when non-empty.
	UserAgent string
}

// HTTPSource fetches feed pages from a wallfeed-compatible HTTP endpoint:
// a POST of the query JSON answered with a data/items/totalCount/totalPages
// envelope. It implements Source[T].
//
// The source performs no retries of its own; the controller's error state
// drives manual retry.
type HTTPSource[T any] struct {
	cfg HTTPSourceConfig
}

// NewHTTPSource creates an HTTPSource for the given endpoint.
func NewHTTPSource[T any](cfg HTTPSourceConfig) (*HTTPSource[T], error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("feedclient: endpoint is required")
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSource[T]{cfg: cfg}, nil
}

// FetchPage implements the Source interface.
func (s *HTTPSource[T]) FetchPage(ctx context.Context, q Query, page int) (Page[T], error) {
	if s.cfg.Breaker == nil {
		return s.fetch(ctx, q, page)
	}

	result, err := s.cfg.Breaker.Execute(func() (interface{}, error) {
		return s.fetch(ctx, q, page)
	})
	if err != nil {
		return Page[T]{}, err
	}
	return result.(Page[T]), nil
}

func (s *HTTPSource[T]) fetch(ctx context.Context, q Query, page int) (Page[T], error) {
	payload := feedRequest{
		Search:      q.Search,
		Category:    q.Category,
		PremiumOnly: q.PremiumOnly,
		VideoOnly:   q.VideoOnly,
		Sort:        q.Sort,
		Page:        page,
		Limit:       q.Limit,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Page[T]{}, fmt.Errorf("FetchPage: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Page[T]{}, fmt.Errorf("FetchPage: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := s.cfg.Client.Do(req)
	if err != nil {
		return Page[T]{}, fmt.Errorf("FetchPage: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.CopyN(io.Discard, resp.Body, maxErrorBodyBytes)
		return Page[T]{}, &StatusError{StatusCode: resp.StatusCode}
	}

	var envelope feedEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Page[T]{}, fmt.Errorf("FetchPage: decode response: %w", err)
	}

	return Page[T]{
		Items:      envelope.Data.Items,
		TotalCount: envelope.Data.TotalCount,
		TotalPages: envelope.Data.TotalPages,
	}, nil
}

// NewBreaker builds a circuit breaker suited to fronting an HTTPSource.
// Canceled fetches are not counted as failures: the controller cancels
// superseded requests as part of normal operation, and a burst of query
// changes must not open the circuit.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
}
