package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"wallfeed/internal/common/pagination"
	"wallfeed/internal/handler/http/respond"
	"wallfeed/internal/observability/logging"
	"wallfeed/internal/observability/metrics"
	wpUC "wallfeed/internal/usecase/wallpaper"
)

// Handler serves the feed endpoint.
type Handler struct {
	Svc           *wpUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP フィード取得
// @Summary      フィード取得
// @Description  壁紙フィードを1ページ分取得します。検索・カテゴリ・ソート条件はJSONボディで指定します
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        request body Request false "フィード条件（省略時はデフォルト）"
// @Success      200 {object} pagination.Envelope[DTO] "フィード1ページ" headers(X-RateLimit-Limit=integer,X-RateLimit-Remaining=integer)
// @Failure      400 {string} string "Bad request - invalid sort or pagination"
// @Failure      429 {string} string "Too many requests - rate limit exceeded" headers(Retry-After=integer)
// @Failure      500 {string} string "サーバーエラー"
// @Router       /feed [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		// 空ボディはデフォルト条件として扱う
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	params, err := h.resolveParams(req)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	query := wpUC.FeedQuery{
		Search:       req.Search,
		CategorySlug: req.Category,
		PremiumOnly:  req.PremiumOnly,
		VideoOnly:    req.VideoOnly,
		Sort:         req.Sort,
	}

	start := time.Now()
	result, err := h.Svc.Feed(r.Context(), query, params)
	if err != nil {
		if errors.Is(err, wpUC.ErrInvalidSort) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	sortLabel := req.Sort
	if sortLabel == "" {
		sortLabel = "newest"
	}
	metrics.RecordFeedRequest(sortLabel, time.Since(start))

	out := make([]DTO, 0, len(result.Items))
	for _, item := range result.Items {
		out = append(out, fromEntity(item))
	}

	if h.Logger != nil {
		logger := logging.WithRequestID(r.Context(), h.Logger)
		logger.Debug("feed served",
			slog.String("sort", sortLabel),
			slog.Int("page", params.Page),
			slog.Int("items", len(out)),
			slog.Int64("total", result.Meta.Total),
		)
	}

	respond.JSON(w, http.StatusOK, pagination.NewEnvelope(out, result.Meta))
}

// resolveParams applies defaults to the body's page/limit and bounds them
// the same way the query-string parser does.
func (h Handler) resolveParams(req Request) (pagination.Params, error) {
	params := pagination.Params{
		Page:  h.PaginationCfg.DefaultPage,
		Limit: h.PaginationCfg.DefaultLimit,
	}
	if req.Page != 0 {
		if req.Page < 1 {
			return params, errors.New("invalid page: must be a positive integer")
		}
		params.Page = req.Page
	}
	if req.Limit != 0 {
		if req.Limit < 1 || req.Limit > h.PaginationCfg.MaxLimit {
			return params, fmt.Errorf("invalid limit: must be between 1 and %d", h.PaginationCfg.MaxLimit)
		}
		params.Limit = req.Limit
	}
	return params, nil
}
