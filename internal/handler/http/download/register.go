package download

import (
	"log/slog"
	"net/http"

	"wallfeed/internal/handler/http/middleware"
	dlUC "wallfeed/internal/usecase/download"
)

// Register registers the download endpoint with the given mux.
func Register(mux *http.ServeMux, svc *dlUC.Service, extractor middleware.IPExtractor, logger *slog.Logger) {
	mux.Handle("POST /wallpapers/", Handler{
		Svc:         svc,
		IPExtractor: extractor,
		Logger:      logger,
	})
}
