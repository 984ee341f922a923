package feed_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wallfeed/internal/common/pagination"
	"wallfeed/internal/domain/entity"
	"wallfeed/internal/handler/http/feed"
	"wallfeed/internal/repository"
	wpUC "wallfeed/internal/usecase/wallpaper"
)

/* ───────── モック実装 ───────── */

type stubFeedRepo struct {
	items     []entity.WallpaperWithCategory
	total     int64
	gotFilter repository.FeedFilter
	gotOffset int
	gotLimit  int
	feedErr   error
	countErr  error
}

func (s *stubFeedRepo) Feed(_ context.Context, filter repository.FeedFilter, offset, limit int) ([]entity.WallpaperWithCategory, error) {
	if s.feedErr != nil {
		return nil, s.feedErr
	}
	s.gotFilter = filter
	s.gotOffset = offset
	s.gotLimit = limit
	return s.items, nil
}

func (s *stubFeedRepo) CountFeed(_ context.Context, _ repository.FeedFilter) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.total, nil
}

// 以下は未使用だが、インターフェース満たすために実装
func (s *stubFeedRepo) CountAll(_ context.Context) (int64, error) { return 0, nil }
func (s *stubFeedRepo) Get(_ context.Context, _ int64) (*entity.Wallpaper, error) {
	return nil, nil
}
func (s *stubFeedRepo) GetWithCategory(_ context.Context, _ int64) (*entity.WallpaperWithCategory, error) {
	return nil, nil
}
func (s *stubFeedRepo) Create(_ context.Context, _ *entity.Wallpaper) error { return nil }
func (s *stubFeedRepo) Update(_ context.Context, _ *entity.Wallpaper) error { return nil }
func (s *stubFeedRepo) Delete(_ context.Context, _ int64) error             { return nil }
func (s *stubFeedRepo) IncrementDownloads(_ context.Context, _ int64) (int64, error) {
	return 0, nil
}
func (s *stubFeedRepo) IncrementViews(_ context.Context, _ int64) error { return nil }
func (s *stubFeedRepo) ExistsBySlug(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (s *stubFeedRepo) UpsertBySlug(_ context.Context, _ *entity.Wallpaper) (bool, error) {
	return false, nil
}
func (s *stubFeedRepo) RefreshTrendingScores(_ context.Context, _ float64) error { return nil }

func newHandler(repo repository.WallpaperRepository) feed.Handler {
	return feed.Handler{
		Svc:           &wpUC.Service{Repo: repo},
		PaginationCfg: pagination.DefaultConfig(),
	}
}

func sampleItem(id int64, title string) entity.WallpaperWithCategory {
	return entity.WallpaperWithCategory{
		Wallpaper: entity.Wallpaper{
			ID:          id,
			CategoryID:  1,
			Title:       title,
			Slug:        strings.ToLower(strings.ReplaceAll(title, " ", "-")),
			ImageURL:    "https://cdn.example.com/walls/a.jpg",
			Tags:        []string{"sky"},
			Width:       3840,
			Height:      2160,
			Downloads:   10,
			Views:       50,
			PublishedAt: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		CategoryName: "Nature",
		CategorySlug: "nature",
	}
}

type envelope struct {
	Data struct {
		Items      []feed.DTO `json:"items"`
		TotalCount int64      `json:"totalCount"`
		TotalPages int        `json:"totalPages"`
	} `json:"data"`
}

/* ───────── テストケース ───────── */

func TestFeedHandler_Success(t *testing.T) {
	repo := &stubFeedRepo{
		items: []entity.WallpaperWithCategory{
			sampleItem(1, "Aurora Over the Fjord"),
			sampleItem(2, "Desert Dusk"),
		},
		total: 50,
	}
	h := newHandler(repo)

	body := `{"search":"aurora","sort":"trending","page":2,"limit":10}`
	req := httptest.NewRequest(http.MethodPost, "/feed", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got envelope
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Data.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Data.Items))
	}
	if got.Data.TotalCount != 50 {
		t.Errorf("totalCount = %d, want 50", got.Data.TotalCount)
	}
	if got.Data.TotalPages != 5 {
		t.Errorf("totalPages = %d, want 5", got.Data.TotalPages)
	}
	if got.Data.Items[0].Category != "Nature" {
		t.Errorf("category = %q, want Nature", got.Data.Items[0].Category)
	}

	// ページ2 × limit10 → offset 10
	if repo.gotOffset != 10 || repo.gotLimit != 10 {
		t.Errorf("offset/limit = %d/%d, want 10/10", repo.gotOffset, repo.gotLimit)
	}
	if repo.gotFilter.Sort != repository.SortTrending {
		t.Errorf("sort = %q, want trending", repo.gotFilter.Sort)
	}
	if len(repo.gotFilter.Keywords) != 1 || repo.gotFilter.Keywords[0] != "aurora" {
		t.Errorf("keywords = %v, want [aurora]", repo.gotFilter.Keywords)
	}
}

func TestFeedHandler_EmptyBodyUsesDefaults(t *testing.T) {
	repo := &stubFeedRepo{total: 0}
	h := newHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/feed", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	cfg := pagination.DefaultConfig()
	if repo.gotOffset != 0 || repo.gotLimit != cfg.DefaultLimit {
		t.Errorf("offset/limit = %d/%d, want 0/%d", repo.gotOffset, repo.gotLimit, cfg.DefaultLimit)
	}
	if repo.gotFilter.Sort != repository.SortNewest {
		t.Errorf("default sort = %q, want newest", repo.gotFilter.Sort)
	}

	var got envelope
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// 空の結果でも items は null ではなく []
	if got.Data.Items == nil {
		t.Error("items should be an empty array, not null")
	}
}

func TestFeedHandler_InvalidSort(t *testing.T) {
	h := newHandler(&stubFeedRepo{})

	req := httptest.NewRequest(http.MethodPost, "/feed", strings.NewReader(`{"sort":"alphabetical"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFeedHandler_InvalidPagination(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "negative page", body: `{"page":-1}`},
		{name: "limit over max", body: `{"limit":10000}`},
		{name: "negative limit", body: `{"limit":-5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(&stubFeedRepo{})
			req := httptest.NewRequest(http.MethodPost, "/feed", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestFeedHandler_MalformedBody(t *testing.T) {
	h := newHandler(&stubFeedRepo{})

	req := httptest.NewRequest(http.MethodPost, "/feed", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFeedHandler_RepositoryError(t *testing.T) {
	h := newHandler(&stubFeedRepo{countErr: errors.New("pq: connection refused")})

	req := httptest.NewRequest(http.MethodPost, "/feed", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	// DBエラーの詳細はレスポンスに漏らさない
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("response leaked internal error details")
	}
}
