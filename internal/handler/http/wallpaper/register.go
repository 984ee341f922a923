package wallpaper

import (
	"net/http"

	wpUC "wallfeed/internal/usecase/wallpaper"
)

// Register registers the wallpaper detail endpoint with the given mux.
// The download sub-route is registered separately by the download package.
func Register(mux *http.ServeMux, svc *wpUC.Service) {
	mux.Handle("GET /wallpapers/", GetHandler{svc})
}
