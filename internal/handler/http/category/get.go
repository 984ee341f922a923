package category

import (
	"errors"
	"net/http"
	"strings"

	"wallfeed/internal/domain/entity"
	"wallfeed/internal/handler/http/respond"
	catUC "wallfeed/internal/usecase/category"
)

type GetHandler struct{ Svc *catUC.Service }

// ServeHTTP カテゴリ詳細取得
// @Summary      カテゴリ詳細取得
// @Description  指定されたスラッグのカテゴリを取得します
// @Tags         categories
// @Produce      json
// @Param        slug path string true "カテゴリスラッグ"
// @Success      200 {object} DTO "カテゴリ詳細"
// @Failure      400 {string} string "Bad request - invalid slug"
// @Failure      404 {string} string "Not found - category not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /categories/{slug} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/categories/")
	if slug == "" || strings.Contains(slug, "/") {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid category slug"))
		return
	}

	c, err := h.Svc.GetBySlug(r.Context(), slug)
	if err != nil {
		code := http.StatusInternalServerError
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			code = http.StatusBadRequest
		} else if errors.Is(err, catUC.ErrCategoryNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, DTO{
		ID:   c.ID,
		Name: c.Name,
		Slug: c.Slug,
	})
}
