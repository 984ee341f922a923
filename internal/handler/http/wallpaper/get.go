package wallpaper

import (
	"errors"
	"net/http"

	"wallfeed/internal/handler/http/pathutil"
	"wallfeed/internal/handler/http/respond"
	wpUC "wallfeed/internal/usecase/wallpaper"
)

type GetHandler struct{ Svc *wpUC.Service }

// ServeHTTP 壁紙詳細取得
// @Summary      壁紙詳細取得
// @Description  指定されたIDの壁紙を取得します（カテゴリ名を含む）。閲覧カウンターを加算します
// @Tags         wallpapers
// @Produce      json
// @Param        id path int true "壁紙ID"
// @Success      200 {object} DTO "壁紙詳細"
// @Failure      400 {string} string "Bad request - invalid wallpaper ID"
// @Failure      404 {string} string "Not found - wallpaper not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /wallpapers/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/wallpapers/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.Svc.GetWithCategory(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, wpUC.ErrInvalidWallpaperID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, wpUC.ErrWallpaperNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, fromEntity(item))
}
