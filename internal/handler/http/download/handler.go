// Package download provides the HTTP handler for download registration.
// Registering a download bumps the wallpaper's counter and returns the
// asset URL the client should fetch; allowance is enforced per client IP.
package download

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"wallfeed/internal/handler/http/middleware"
	"wallfeed/internal/handler/http/pathutil"
	"wallfeed/internal/handler/http/respond"
	"wallfeed/internal/observability/logging"
	"wallfeed/internal/observability/metrics"
	dlUC "wallfeed/internal/usecase/download"
)

// Response is the JSON structure of a successful download registration.
type Response struct {
	URL       string `json:"url" example:"https://cdn.example.com/walls/aurora.jpg"`
	Downloads int64  `json:"downloads" example:"121"`
	IsPremium bool   `json:"isPremium" example:"false"`
}

// Handler serves the download registration endpoint.
type Handler struct {
	Svc         *dlUC.Service
	IPExtractor middleware.IPExtractor
	Logger      *slog.Logger
}

// ServeHTTP ダウンロード登録
// @Summary      ダウンロード登録
// @Description  壁紙のダウンロードを登録し、取得すべきアセットURLを返します。クライアントIPごとに回数制限があります
// @Tags         downloads
// @Produce      json
// @Param        id path int true "壁紙ID"
// @Success      200 {object} Response "登録結果"
// @Failure      400 {string} string "Bad request - invalid wallpaper ID"
// @Failure      404 {string} string "Not found - wallpaper not found"
// @Failure      429 {string} string "Too many requests - download limit exceeded" headers(Retry-After=integer,X-RateLimit-Reset=integer)
// @Failure      500 {string} string "サーバーエラー"
// @Router       /wallpapers/{id}/download [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/download")
	if path == r.URL.Path {
		respond.SafeError(w, http.StatusNotFound, errors.New("not found"))
		return
	}
	id, err := pathutil.ExtractID(path, "/wallpapers/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	clientKey, err := h.IPExtractor.ExtractIP(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid client address"))
		return
	}

	result, err := h.Svc.Register(r.Context(), id, clientKey)
	if err != nil {
		var limited *dlUC.RateLimitedError
		if errors.As(err, &limited) {
			metrics.RecordDownloadDenied()
			w.Header().Set("Retry-After", strconv.FormatInt(limited.Decision.RetryAfterSeconds(), 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(limited.Decision.ResetAt.Unix(), 10))
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "download limit exceeded",
			})
			return
		}

		code := http.StatusInternalServerError
		if errors.Is(err, dlUC.ErrInvalidWallpaperID) || errors.Is(err, dlUC.ErrMissingClientKey) {
			code = http.StatusBadRequest
		} else if errors.Is(err, dlUC.ErrWallpaperNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	metrics.RecordDownload(result.Premium)

	if h.Logger != nil {
		logger := logging.WithRequestID(r.Context(), h.Logger)
		logger.Info("download registered",
			slog.Int64("wallpaper_id", id),
			slog.Int64("downloads", result.Downloads),
			slog.Bool("premium", result.Premium),
		)
	}

	respond.JSON(w, http.StatusOK, Response{
		URL:       result.URL,
		Downloads: result.Downloads,
		IsPremium: result.Premium,
	})
}
