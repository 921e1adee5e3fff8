package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonLDFixture = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Product",
  "name": "Linen Blend Shirt",
  "sku": "9988776",
  "brand": {"@type": "Brand", "name": "Acme Apparel"},
  "image": ["https://cdn.acme.example/shirt-front.jpg", "https://cdn.acme.example/shirt-back.jpg"],
  "description": "Relaxed fit linen blend shirt.",
  "offers": {
    "@type": "Offer",
    "price": "39.99",
    "priceCurrency": "USD",
    "availability": "http://schema.org/OutOfStock"
  }
}
</script>
</head><body><h1>Linen Blend Shirt</h1></body></html>`

const microdataFixture = `<!DOCTYPE html>
<html><body itemscope itemtype="https://schema.org/Product">
<h1 itemprop="name">Wool Coat</h1>
<span itemprop="brand">Acme Apparel</span>
<meta itemprop="sku" content="555001">
<span itemprop="price" content="129.00">129,00 &euro;</span>
<meta itemprop="priceCurrency" content="EUR">
<link itemprop="availability" href="http://schema.org/InStock">
</body></html>`

const pricelessFixture = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{"@type": "Product", "name": "Mystery Item"}
</script>
</head><body></body></html>`

const plainPageFixture = `<!DOCTYPE html>
<html><body><h1>About us</h1><p>We sell things.</p></body></html>`

func TestGenericAdapterJSONLD(t *testing.T) {
	adapter := NewGenericAdapter()
	page, err := NewPageContext("https://acme.example/product/9988776", jsonLDFixture)
	require.NoError(t, err)

	product := adapter.Extract(page)

	require.True(t, product.Usable())
	assert.Equal(t, "Linen Blend Shirt", product.Title)
	assert.Equal(t, "Acme Apparel", product.Brand)
	assert.Equal(t, "9988776", product.SKU)
	assert.Equal(t, 39.99, product.Price)
	assert.Equal(t, "USD", product.Currency)
	assert.Equal(t, "http://schema.org/OutOfStock", product.Availability)
	assert.Equal(t, "https://cdn.acme.example/shirt-front.jpg", product.ImageURL)
	assert.Equal(t, "generic-schema-org", product.ExtractionMethod)
}

func TestGenericAdapterMicrodata(t *testing.T) {
	adapter := NewGenericAdapter()
	page, err := NewPageContext("https://acme.example/p/555001", microdataFixture)
	require.NoError(t, err)

	product := adapter.Extract(page)

	require.True(t, product.Usable())
	assert.Equal(t, "Wool Coat", product.Title)
	assert.Equal(t, 129.00, product.Price)
	assert.Equal(t, "EUR", product.Currency)
	assert.Equal(t, "http://schema.org/InStock", product.Availability)
}

func TestGenericAdapterMissingPriceIsNotSuccess(t *testing.T) {
	adapter := NewGenericAdapter()
	page, err := NewPageContext("https://acme.example/product/1", pricelessFixture)
	require.NoError(t, err)

	product := adapter.Extract(page)

	assert.True(t, product.IsProductPage)
	assert.False(t, product.Success, "a price must never be guessed")
	assert.False(t, product.Usable())
}

func TestGenericAdapterPlainPage(t *testing.T) {
	adapter := NewGenericAdapter()
	page, err := NewPageContext("https://acme.example/about", plainPageFixture)
	require.NoError(t, err)

	product := adapter.Extract(page)

	assert.False(t, product.IsProductPage)
	assert.False(t, product.Success)
}

func TestGenericAdapterLooksLikeProductURL(t *testing.T) {
	adapter := NewGenericAdapter()

	assert.True(t, adapter.LooksLikeProductURL("/product/123"))
	assert.True(t, adapter.LooksLikeProductURL("/en/p/shirt-123"))
	assert.True(t, adapter.LooksLikeProductURL("/item/42"))
	assert.False(t, adapter.LooksLikeProductURL("/help/returns"))
}
