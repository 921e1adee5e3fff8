package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shoplens/shoplens/internal/models"
)

func product(url, brand, sku, title string) *models.ProductInfo {
	return &models.ProductInfo{URL: url, Brand: brand, SKU: sku, Title: title}
}

func TestKeyOfPrefersSKU(t *testing.T) {
	p := product("https://zara.com/p/1", "Zara", "02753305", "RIBBED TOP")
	assert.Equal(t, Key{URL: "https://zara.com/p/1", Brand: "Zara", Ref: "02753305"}, KeyOf(p))
}

func TestKeyOfFallsBackToTitle(t *testing.T) {
	p := product("https://zara.com/p/1", "Zara", "", "RIBBED TOP")
	assert.Equal(t, "RIBBED TOP", KeyOf(p).Ref)
}

func TestSame(t *testing.T) {
	tests := []struct {
		name string
		a, b *models.ProductInfo
		want bool
	}{
		{
			name: "identical",
			a:    product("https://zara.com/p/1", "Zara", "111", "Top"),
			b:    product("https://zara.com/p/1", "Zara", "111", "Top"),
			want: true,
		},
		{
			name: "variant selection is irrelevant",
			a: &models.ProductInfo{
				URL: "https://zara.com/p/1", Brand: "Zara", SKU: "111",
				Variants: map[string][]models.VariantOption{
					models.VariantGroupSizes: {{Text: "S", Selected: true}},
				},
			},
			b: &models.ProductInfo{
				URL: "https://zara.com/p/1", Brand: "Zara", SKU: "111",
				Variants: map[string][]models.VariantOption{
					models.VariantGroupSizes: {{Text: "M", Selected: true}},
				},
			},
			want: true,
		},
		{
			name: "different sku",
			a:    product("https://zara.com/p/1", "Zara", "111", "Top"),
			b:    product("https://zara.com/p/1", "Zara", "222", "Top"),
			want: false,
		},
		{
			name: "different url",
			a:    product("https://zara.com/p/1", "Zara", "111", "Top"),
			b:    product("https://zara.com/p/2", "Zara", "111", "Top"),
			want: false,
		},
		{
			name: "sku vs title ref",
			a:    product("https://zara.com/p/1", "Zara", "111", "Top"),
			b:    product("https://zara.com/p/1", "Zara", "", "Top"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Same(tt.a, tt.b))
		})
	}
}
