package feed

import (
	"log/slog"
	"net/http"

	"wallfeed/internal/common/pagination"
	wpUC "wallfeed/internal/usecase/wallpaper"
)

// Register registers the feed endpoint with the given mux.
func Register(mux *http.ServeMux, svc *wpUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("POST /feed", Handler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
}
