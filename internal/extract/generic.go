package extract

import (
	"strings"

	"github.com/shoplens/shoplens/internal/models"
)

// GenericAdapter extracts schema.org Product data only (JSON-LD first,
// microdata second) and serves any registered retailer without a bespoke
// adapter. It never guesses: a page without an extractable price yields
// Success=false rather than a made-up record.
type GenericAdapter struct{}

func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

func (a *GenericAdapter) Name() string {
	return "generic-schema-org"
}

var productPathMarkers = []string{"/product/", "/products/", "/p/", "/item/", "/dp/"}

func (a *GenericAdapter) LooksLikeProductURL(path string) bool {
	path = strings.ToLower(path)
	for _, marker := range productPathMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

func (a *GenericAdapter) Extract(page *PageContext) *models.ProductInfo {
	product := models.NewProductInfo(page.URL)
	product.ExtractionMethod = a.Name()

	if ld, ok := findJSONLDProduct(page.Doc); ok {
		a.fillFromJSONLD(product, ld)
	}
	if product.Price == 0 {
		a.fillFromMicrodata(product, page)
	}

	if product.Title == "" && product.Price == 0 {
		// Nothing product-shaped on this page.
		return product
	}

	product.IsProductPage = true
	// A product record without a price is ambiguous, not wrong data.
	product.Success = product.Price > 0 && product.Title != ""
	return product
}

func (a *GenericAdapter) fillFromJSONLD(product *models.ProductInfo, ld *ldProduct) {
	product.Title = ld.Name.String()
	product.Description = ld.Description.String()
	product.SKU = ld.SKU.String()
	product.Brand = ld.Brand.String()
	product.ImageURL = ld.Image.String()

	if ld.Offers != nil {
		price := ld.Offers.Price.String()
		if price == "" {
			price = ld.Offers.LowPrice.String()
		}
		product.Price = parseAmount(price)
		product.Currency = ld.Offers.Currency.String()
		product.Availability = ld.Offers.Availability.String()
	}
}

func (a *GenericAdapter) fillFromMicrodata(product *models.ProductInfo, page *PageContext) {
	doc := page.Doc

	if product.Title == "" {
		// Deliberately no bare h1 fallback: without schema.org markup this
		// adapter reports "not a product page" instead of guessing.
		product.Title = firstText(doc, `[itemprop="name"]`)
	}
	if product.Brand == "" {
		product.Brand = firstText(doc, `[itemprop="brand"]`)
	}
	if product.SKU == "" {
		product.SKU = firstText(doc, `[itemprop="sku"]`)
	}
	if product.ImageURL == "" {
		product.ImageURL = firstAttr(doc, "src", `img[itemprop="image"]`)
		if product.ImageURL == "" {
			product.ImageURL = firstAttr(doc, "content", `meta[property="og:image"]`)
		}
	}
	if product.Availability == "" {
		product.Availability = firstAttr(doc, "href", `link[itemprop="availability"]`)
		if product.Availability == "" {
			product.Availability = firstAttr(doc, "content", `[itemprop="availability"]`)
		}
	}

	if product.Price == 0 {
		priceText := firstAttr(doc, "content", `[itemprop="price"]`)
		if priceText == "" {
			priceText = firstText(doc, `[itemprop="price"]`)
		}
		amount, currency := parsePriceText(priceText)
		product.Price = amount
		if product.Currency == "" {
			product.Currency = currency
		}
	}
	if product.Currency == "" {
		product.Currency = firstAttr(doc, "content", `[itemprop="priceCurrency"]`)
	}
}
