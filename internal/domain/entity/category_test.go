package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Validate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  bool
	}{
		{
			name:     "valid category",
			category: Category{Name: "Cityscapes", Slug: "cityscapes"},
			wantErr:  false,
		},
		{
			name:     "missing name",
			category: Category{Name: "", Slug: "cityscapes"},
			wantErr:  true,
		},
		{
			name:     "whitespace name",
			category: Category{Name: "  ", Slug: "cityscapes"},
			wantErr:  true,
		},
		{
			name:     "name too long",
			category: Category{Name: strings.Repeat("x", 101), Slug: "cityscapes"},
			wantErr:  true,
		},
		{
			name:     "missing slug",
			category: Category{Name: "Cityscapes", Slug: ""},
			wantErr:  true,
		},
		{
			name:     "invalid slug",
			category: Category{Name: "Cityscapes", Slug: "City Scapes"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategoryWithCount(t *testing.T) {
	cc := CategoryWithCount{
		Category:       Category{ID: 3, Name: "Nature", Slug: "nature"},
		WallpaperCount: 42,
	}

	assert.Equal(t, int64(3), cc.ID)
	assert.Equal(t, "Nature", cc.Name)
	assert.Equal(t, int64(42), cc.WallpaperCount)
}
