package vitals

import (
	"net/http"

	vitalsUC "wallfeed/internal/usecase/vitals"
)

// Register registers the vitals endpoint with the given mux.
func Register(mux *http.ServeMux, svc *vitalsUC.Service) {
	mux.Handle("POST /vitals", Handler{svc})
}
