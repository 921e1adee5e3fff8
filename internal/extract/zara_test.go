package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplens/shoplens/internal/models"
)

const zaraFixture = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@type": "Product",
  "name": "RIBBED CROP TOP",
  "sku": "02753305",
  "description": "Sleeveless ribbed top.",
  "image": "https://static.zara.net/photos/top.jpg",
  "offers": {"@type": "Offer", "price": "19.95", "priceCurrency": "EUR", "availability": "https://schema.org/InStock"}
}
</script>
</head><body>
<div class="product-detail-color-selector">
  <div class="product-detail-color-selector__color product-detail-color-selector__color--is-selected">
    <span class="screen-reader-text">Burgundy</span>
    <span class="product-detail-color-selector__color-area" style="background-color: rgb(128, 0, 32);"></span>
  </div>
  <div class="product-detail-color-selector__color">
    <span class="screen-reader-text">Black</span>
    <span class="product-detail-color-selector__color-area" style="background-color: rgb(0, 0, 0);"></span>
  </div>
</div>
<ul>
  <li class="size-selector-list__item"><button data-qa-action="size-in-stock"><span class="product-size-info__main-label">S</span></button></li>
  <li class="size-selector-list__item size-selector-list__item--is-selected"><button data-qa-action="size-in-stock"><span class="product-size-info__main-label">M</span></button></li>
  <li class="size-selector-list__item"><button data-qa-action="size-out-of-stock"><span class="product-size-info__main-label">L</span></button></li>
</ul>
</body></html>`

func TestZaraAdapterExtract(t *testing.T) {
	adapter := NewZaraAdapter()
	page, err := NewPageContext("https://www.zara.com/us/en/ribbed-crop-top-p02753305.html", zaraFixture)
	require.NoError(t, err)

	product := adapter.Extract(page)

	require.True(t, product.Usable())
	assert.Equal(t, "RIBBED CROP TOP", product.Title)
	assert.Equal(t, "Zara", product.Brand)
	assert.Equal(t, 19.95, product.Price)
	assert.Equal(t, "EUR", product.Currency)
	assert.Equal(t, "zara", product.ExtractionMethod)

	colors := product.Variants[models.VariantGroupColors]
	require.Len(t, colors, 2)
	assert.Equal(t, "Burgundy", colors[0].Text)
	assert.True(t, colors[0].Selected)
	assert.Equal(t, "rgb(128, 0, 32)", colors[0].Value)
	assert.Equal(t, models.ValueKindRGBColor, colors[0].ParseValue().Kind)

	sizes := product.Variants[models.VariantGroupSizes]
	require.Len(t, sizes, 3)
	assert.True(t, sizes[1].Selected)
	assert.True(t, sizes[0].InStock())
	assert.False(t, sizes[2].InStock(), "structured inStock false must win")
}

func TestZaraAdapterNonProductPage(t *testing.T) {
	adapter := NewZaraAdapter()
	page, err := NewPageContext("https://www.zara.com/us/en/woman-new-in-l1180.html",
		`<!DOCTYPE html><html><body><nav>category listing</nav></body></html>`)
	require.NoError(t, err)

	product := adapter.Extract(page)

	assert.False(t, product.IsProductPage)
	assert.False(t, product.Usable())
}

func TestZaraLooksLikeProductURL(t *testing.T) {
	adapter := NewZaraAdapter()

	tests := []struct {
		path string
		want bool
	}{
		{"/us/en/ribbed-crop-top-p02753305.html", true},
		{"/us/en/ribbed-crop-top-p02753305.html?v1=42", true},
		{"/product/12345", true},
		{"/us/en/woman-new-in-l1180.html", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, adapter.LooksLikeProductURL(tt.path))
		})
	}
}
