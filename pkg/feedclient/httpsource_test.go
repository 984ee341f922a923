package feedclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"wallfeed/pkg/feedclient"
)

type wireItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestHTTPSource_FetchPage(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"items":[{"id":1,"title":"Aurora"},{"id":2,"title":"Dunes"}],"totalCount":40,"totalPages":2}}`))
	}))
	defer server.Close()

	src, err := feedclient.NewHTTPSource[wireItem](feedclient.HTTPSourceConfig{
		Endpoint:  server.URL + "/feed",
		UserAgent: "feedwatch/1.0",
	})
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}

	page, err := src.FetchPage(context.Background(), feedclient.Query{
		Search:    "mountains",
		Category:  "nature",
		VideoOnly: true,
		Sort:      "newest",
		Limit:     24,
	}, 2)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.Items[0].Title != "Aurora" {
		t.Errorf("first item = %q, want Aurora", page.Items[0].Title)
	}
	if page.TotalCount != 40 {
		t.Errorf("TotalCount = %d, want 40", page.TotalCount)
	}
	if page.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", page.TotalPages)
	}

	// Request body carries the wire field names.
	if gotBody["search"] != "mountains" {
		t.Errorf("search = %v, want mountains", gotBody["search"])
	}
	if gotBody["category"] != "nature" {
		t.Errorf("category = %v, want nature", gotBody["category"])
	}
	if gotBody["video_only"] != true {
		t.Errorf("video_only = %v, want true", gotBody["video_only"])
	}
	if gotBody["sort"] != "newest" {
		t.Errorf("sort = %v, want newest", gotBody["sort"])
	}
	if gotBody["page"] != float64(2) {
		t.Errorf("page = %v, want 2", gotBody["page"])
	}
	if gotBody["limit"] != float64(24) {
		t.Errorf("limit = %v, want 24", gotBody["limit"])
	}
	// Unset filters are omitted entirely rather than sent as false.
	if _, present := gotBody["is_premium"]; present {
		t.Error("is_premium should be omitted when false")
	}
}

func TestHTTPSource_NonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	src, err := feedclient.NewHTTPSource[wireItem](feedclient.HTTPSourceConfig{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}

	_, err = src.FetchPage(context.Background(), feedclient.Query{Limit: 24}, 1)
	var statusErr *feedclient.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want StatusError", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", statusErr.StatusCode)
	}
}

func TestHTTPSource_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	src, err := feedclient.NewHTTPSource[wireItem](feedclient.HTTPSourceConfig{
		Endpoint: server.URL,
		Breaker:  feedclient.NewBreaker("test-feed"),
	})
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}

	var lastErr error
	for i := 0; i < 10; i++ {
		_, lastErr = src.FetchPage(context.Background(), feedclient.Query{Limit: 24}, 1)
	}

	if !errors.Is(lastErr, gobreaker.ErrOpenState) {
		t.Errorf("error after repeated failures = %v, want circuit open", lastErr)
	}
}

func TestHTTPSource_MalformedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [1,2,3]}`))
	}))
	defer server.Close()

	src, err := feedclient.NewHTTPSource[wireItem](feedclient.HTTPSourceConfig{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}

	if _, err := src.FetchPage(context.Background(), feedclient.Query{Limit: 24}, 1); err == nil {
		t.Error("FetchPage succeeded on malformed response, want error")
	}
}

func TestNewHTTPSource_RequiresEndpoint(t *testing.T) {
	t.Parallel()

	if _, err := feedclient.NewHTTPSource[wireItem](feedclient.HTTPSourceConfig{}); err == nil {
		t.Error("NewHTTPSource accepted empty endpoint, want error")
	}
}

func TestHTTPSource_WorksAsControllerSource(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Page int `json:"page"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		w.Header().Set("Content-Type", "application/json")
		if req.Page == 1 {
			_, _ = w.Write([]byte(`{"data":{"items":[{"id":1},{"id":2}],"totalCount":3,"totalPages":2}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"items":[{"id":3}],"totalCount":3,"totalPages":2}}`))
	}))
	defer server.Close()

	src, err := feedclient.NewHTTPSource[wireItem](feedclient.HTTPSourceConfig{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}

	updates := make(chan feedclient.Snapshot[wireItem], 16)
	ctrl := feedclient.New[wireItem](src, func(it wireItem) string {
		return strconv.FormatInt(it.ID, 10)
	}, feedclient.Config[wireItem]{
		OnChange: func(s feedclient.Snapshot[wireItem]) { updates <- s },
	})
	defer ctrl.Close()

	ctrl.SetQuery(feedclient.Query{Limit: 2})

	wait := func(cond func(feedclient.Snapshot[wireItem]) bool) feedclient.Snapshot[wireItem] {
		t.Helper()
		timeout := time.After(2 * time.Second)
		for {
			select {
			case s := <-updates:
				if cond(s) {
					return s
				}
			case <-timeout:
				t.Fatal("timed out waiting for controller state")
			}
		}
	}
	first := wait(func(s feedclient.Snapshot[wireItem]) bool {
		return !s.Loading && !s.LoadingMore
	})
	if len(first.Items) != 2 || !first.HasMore {
		t.Fatalf("first page: items=%d hasMore=%v, want 2 items and more", len(first.Items), first.HasMore)
	}

	ctrl.NotifyNearEnd()
	full := wait(func(s feedclient.Snapshot[wireItem]) bool {
		return !s.Loading && !s.LoadingMore && len(s.Items) == 3
	})
	if full.HasMore {
		t.Error("HasMore = true after final short page, want false")
	}
}
