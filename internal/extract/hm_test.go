package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplens/shoplens/internal/models"
)

const hmFixture = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@type": "Product",
  "name": "Regular Fit Hoodie",
  "sku": "0970819001",
  "brand": {"name": "H&M"},
  "image": "//image.hm.com/assets/hoodie.jpg",
  "offers": [{"@type": "Offer", "price": "24.99", "priceCurrency": "USD", "availability": "http://schema.org/InStock"}]
}
</script>
</head><body>
<div class="product-colors">
  <a class="filter-option active" title="Light grey marl"><img src="//image.hm.com/swatches/grey.jpg" alt="Light grey marl"></a>
  <a class="filter-option" title="Black"><img src="//image.hm.com/swatches/black.jpg" alt="Black"></a>
</div>
<ul class="picker-list">
  <li data-value='{"inStock": true, "sizeValue": "S", "sizeAttr": "size_s"}'><label>S</label></li>
  <li class="selected" data-value='{"inStock": true, "sizeValue": "M", "sizeAttr": "size_m"}'><label>M</label></li>
  <li data-value='{"inStock": false, "sizeValue": "L", "sizeAttr": "size_l"}'><label>L</label></li>
</ul>
</body></html>`

func TestHMAdapterExtract(t *testing.T) {
	adapter := NewHMAdapter()
	page, err := NewPageContext("https://www2.hm.com/en_us/productpage.0970819001.html", hmFixture)
	require.NoError(t, err)

	product := adapter.Extract(page)

	require.True(t, product.Usable())
	assert.Equal(t, "Regular Fit Hoodie", product.Title)
	assert.Equal(t, "H&M", product.Brand)
	assert.Equal(t, 24.99, product.Price)
	assert.Equal(t, "hm", product.ExtractionMethod)

	colors := product.Variants[models.VariantGroupColors]
	require.Len(t, colors, 2)
	assert.True(t, colors[0].Selected)
	value := colors[0].ParseValue()
	assert.Equal(t, models.ValueKindImageRef, value.Kind)
	assert.Equal(t, "https://image.hm.com/swatches/grey.jpg", value.ImageURL)

	sizes := product.Variants[models.VariantGroupSizes]
	require.Len(t, sizes, 3)
	assert.True(t, sizes[1].Selected)

	parsed := sizes[2].ParseValue()
	require.Equal(t, models.ValueKindStructured, parsed.Kind)
	require.NotNil(t, parsed.Structured.InStock)
	assert.False(t, *parsed.Structured.InStock)
	assert.Equal(t, "L", parsed.Structured.SizeValue)
	assert.False(t, sizes[2].InStock())
	assert.True(t, sizes[0].InStock())
}

func TestHMLooksLikeProductURL(t *testing.T) {
	adapter := NewHMAdapter()

	assert.True(t, adapter.LooksLikeProductURL("/en_us/productpage.0970819001.html"))
	assert.False(t, adapter.LooksLikeProductURL("/en_us/men/shop-by-product/hoodies.html"))
}
