package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shoplens/shoplens/internal/models"
)

// MangoAdapter handles shop.mango.com product pages. Mango identifies
// colors through swatch image URLs (frequently protocol-relative), which
// become the variant value as-is.
type MangoAdapter struct {
	productPath *regexp.Regexp
}

func NewMangoAdapter() *MangoAdapter {
	return &MangoAdapter{
		productPath: regexp.MustCompile(`_\d{6,}(?:\.html)?$`),
	}
}

func (a *MangoAdapter) Name() string {
	return "mango"
}

func (a *MangoAdapter) LooksLikeProductURL(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return a.productPath.MatchString(path) || strings.Contains(path, "/p/")
}

func (a *MangoAdapter) Extract(page *PageContext) *models.ProductInfo {
	product := models.NewProductInfo(page.URL)
	product.ExtractionMethod = a.Name()
	product.Brand = "Mango"

	if ld, ok := findJSONLDProduct(page.Doc); ok {
		product.Title = ld.Name.String()
		product.Description = ld.Description.String()
		product.SKU = ld.SKU.String()
		product.ImageURL = ld.Image.String()
		if b := ld.Brand.String(); b != "" {
			product.Brand = b
		}
		if ld.Offers != nil {
			product.Price = parseAmount(ld.Offers.Price.String())
			product.Currency = ld.Offers.Currency.String()
			product.Availability = ld.Offers.Availability.String()
		}
	}

	if product.Title == "" {
		product.Title = firstText(page.Doc, "h1.product-name", ".product-details h1", "h1")
	}
	if product.Price == 0 {
		amount, currency := parsePriceText(firstText(page.Doc, ".product-prices__price", ".product-sale", ".price"))
		product.Price = amount
		if product.Currency == "" {
			product.Currency = currency
		}
	}
	if original, _ := parsePriceText(firstText(page.Doc, ".product-prices__price--crossed", ".product-price-crossed")); original > 0 {
		product.OriginalPrice = original
	}

	product.SetVariants(models.VariantGroupColors, a.extractColors(page.Doc))
	product.SetVariants(models.VariantGroupSizes, a.extractSizes(page.Doc))

	if product.Title == "" && product.Price == 0 && len(product.Variants) == 0 {
		return product
	}

	product.IsProductPage = true
	product.Success = product.Price > 0 && product.Title != ""
	return product
}

func (a *MangoAdapter) extractColors(doc *goquery.Document) []models.VariantOption {
	var colors []models.VariantOption

	doc.Find(".color-selector a, .colors-container .color-container").Each(func(_ int, s *goquery.Selection) {
		img := s.Find("img").First()
		name := strings.TrimSpace(img.AttrOr("alt", ""))
		if name == "" {
			name = strings.TrimSpace(s.AttrOr("title", ""))
		}
		if name == "" {
			return
		}

		value := strings.TrimSpace(img.AttrOr("src", ""))
		selected := s.HasClass("selected") || s.HasClass("color-container--selected")

		colors = append(colors, models.VariantOption{Text: name, Selected: selected, Value: value})
	})

	return colors
}

func (a *MangoAdapter) extractSizes(doc *goquery.Document) []models.VariantOption {
	var sizes []models.VariantOption

	doc.Find(".size-selector button, ul.sizes-list li").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		if label == "" {
			return
		}

		value := ""
		if s.HasClass("size--disabled") || s.AttrOr("disabled", "") != "" || s.Find("[disabled]").Length() > 0 {
			value = `{"inStock": false}`
		}

		selected := s.HasClass("selected")
		sizes = append(sizes, models.VariantOption{Text: label, Selected: selected, Value: value})
	})

	return sizes
}
