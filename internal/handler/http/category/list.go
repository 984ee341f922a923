package category

import (
	"net/http"

	"wallfeed/internal/handler/http/respond"
	catUC "wallfeed/internal/usecase/category"
)

type ListHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ一覧取得
// @Summary      カテゴリ一覧取得
// @Description  全カテゴリを壁紙数付きで取得します（名前順）。空のカテゴリも含まれます
// @Tags         categories
// @Produce      json
// @Success      200 {object} ListResponse "カテゴリ一覧"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /categories [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Svc.ListWithCounts(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]DTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, fromEntityWithCount(c))
	}

	respond.JSON(w, http.StatusOK, ListResponse{Data: out})
}
