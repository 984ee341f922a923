// Package vitals provides the HTTP handler for the Web Vitals beacon
// endpoint. Clients report field measurements (LCP, CLS, INP, ...) that are
// folded into Prometheus histograms.
package vitals

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"wallfeed/internal/handler/http/respond"
	vitalsUC "wallfeed/internal/usecase/vitals"
)

// Beacon is the JSON body of one Web Vitals report.
type Beacon struct {
	Name   string  `json:"name" example:"LCP" enums:"LCP,CLS,INP,FCP,TTFB"`
	Value  float64 `json:"value" example:"1830.5"`
	Rating string  `json:"rating" example:"good" enums:"good,needs-improvement,poor"`
	Path   string  `json:"path" example:"/feed"`
}

// Handler serves the vitals beacon endpoint.
type Handler struct {
	Svc *vitalsUC.Service
}

// ServeHTTP Web Vitals 受信
// @Summary      Web Vitals 受信
// @Description  クライアントから送信された Web Vitals 計測値を受け取ります。レスポンスボディはありません
// @Tags         vitals
// @Accept       json
// @Param        beacon body Beacon true "計測値"
// @Success      204 {string} string "No content"
// @Failure      400 {string} string "Bad request - unknown metric or invalid value"
// @Router       /vitals [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var b Beacon
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	err := h.Svc.Record(vitalsUC.Beacon{
		Name:   b.Name,
		Value:  b.Value,
		Rating: b.Rating,
		Path:   b.Path,
	})
	if err != nil {
		if errors.Is(err, vitalsUC.ErrUnknownMetric) || errors.Is(err, vitalsUC.ErrInvalidValue) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
