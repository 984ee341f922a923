package category

import (
	"net/http"

	catUC "wallfeed/internal/usecase/category"
)

// Register registers the category endpoints with the given mux.
func Register(mux *http.ServeMux, svc *catUC.Service) {
	mux.Handle("GET /categories", ListHandler{svc})
	mux.Handle("GET /categories/", GetHandler{svc})
}
