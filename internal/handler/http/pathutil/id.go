package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned for a path segment that is not a positive
// integer ID.
var ErrInvalidID = errors.New("invalid id")

// ExtractID strips prefix from path and parses the remainder as an
// int64 wallpaper ID. Zero, negative, and non-numeric values all come
// back as ErrInvalidID:
//
//	ExtractID("/wallpapers/123", "/wallpapers/")  // 123
//	ExtractID("/wallpapers/abc", "/wallpapers/")  // ErrInvalidID
func ExtractID(path, prefix string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(path, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
