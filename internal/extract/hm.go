package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shoplens/shoplens/internal/models"
)

// HMAdapter handles hm.com product pages. H&M encodes size availability as
// JSON blobs on the picker items ({"inStock": ..., "sizeValue": ...}) which
// are carried through verbatim as the variant value.
type HMAdapter struct {
	productPath *regexp.Regexp
}

func NewHMAdapter() *HMAdapter {
	return &HMAdapter{
		productPath: regexp.MustCompile(`/productpage\.\d+\.html$`),
	}
}

func (a *HMAdapter) Name() string {
	return "hm"
}

func (a *HMAdapter) LooksLikeProductURL(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return a.productPath.MatchString(path) || strings.Contains(path, "/productpage.")
}

func (a *HMAdapter) Extract(page *PageContext) *models.ProductInfo {
	product := models.NewProductInfo(page.URL)
	product.ExtractionMethod = a.Name()
	product.Brand = "H&M"

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
		product.Title = firstText(page.Doc, "h1.primary.product-item-headline", "h1")
	}
	if product.Price == 0 {
		amount, currency := parsePriceText(firstText(page.Doc, ".price-value", "#product-price .price", ".product-item-price"))
		product.Price = amount
		if product.Currency == "" {
			product.Currency = currency
		}
	}
	if original, _ := parsePriceText(firstText(page.Doc, ".price-value--regular", ".price-regular")); original > 0 && original != product.Price {
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

func (a *HMAdapter) extractColors(doc *goquery.Document) []models.VariantOption {
	var colors []models.VariantOption

	doc.Find(".product-colors a.filter-option, .mini-slider a").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.AttrOr("title", ""))
		if name == "" {
			name = strings.TrimSpace(s.Find("img").AttrOr("alt", ""))
		}
		if name == "" {
			return
		}

		// Swatch thumbnails are often protocol-relative.
		value := strings.TrimSpace(s.Find("img").AttrOr("src", ""))
		selected := s.HasClass("active") || s.AttrOr("aria-selected", "") == "true"

		colors = append(colors, models.VariantOption{Text: name, Selected: selected, Value: value})
	})

	return colors
}

func (a *HMAdapter) extractSizes(doc *goquery.Document) []models.VariantOption {
	var sizes []models.VariantOption

	doc.Find(".picker-list li, ul[data-sizes] li").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("label, button, span").First().Text())
		if label == "" {
			label = strings.TrimSpace(s.Text())
		}
		if label == "" {
			return
		}

		value := strings.TrimSpace(s.AttrOr("data-value", ""))
		if value == "" {
			value = strings.TrimSpace(s.Find("[data-value]").AttrOr("data-value", ""))
		}

		selected := s.HasClass("selected") || s.AttrOr("aria-selected", "") == "true"

		sizes = append(sizes, models.VariantOption{Text: label, Selected: selected, Value: value})
	})

	return sizes
}
