package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shoplens/shoplens/internal/models"
)

// BershkaAdapter handles bershka.com product pages. Stock state arrives as
// free text on the size labels ("Sold out", "Agotado"), sometimes in
// Spanish; the variant InStock policy in models recognizes both.
type BershkaAdapter struct {
	productPath *regexp.Regexp
}

func NewBershkaAdapter() *BershkaAdapter {
	return &BershkaAdapter{
		productPath: regexp.MustCompile(`-c0?p\d+\.html$`),
	}
}

func (a *BershkaAdapter) Name() string {
	return "bershka"
}

func (a *BershkaAdapter) LooksLikeProductURL(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return a.productPath.MatchString(path) || strings.Contains(path, "/product/")
}

func (a *BershkaAdapter) Extract(page *PageContext) *models.ProductInfo {
	product := models.NewProductInfo(page.URL)
	product.ExtractionMethod = a.Name()
	product.Brand = "Bershka"

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
		product.Title = firstText(page.Doc, "h1.product-title", ".product-detail h1", "h1")
	}
	if product.Price == 0 {
		amount, currency := parsePriceText(firstText(page.Doc, ".current-price-elem", ".product-price .price", ".price"))
		product.Price = amount
		if product.Currency == "" {
			product.Currency = currency
		}
	}
	if original, _ := parsePriceText(firstText(page.Doc, ".old-price-elem", ".price--old")); original > 0 {
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

func (a *BershkaAdapter) extractColors(doc *goquery.Document) []models.VariantOption {
	var colors []models.VariantOption

	doc.Find("ul.color-list li, .colors-selector button").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.AttrOr("aria-label", ""))
		if name == "" {
			name = strings.TrimSpace(s.Find("img").AttrOr("alt", ""))
		}
		if name == "" {
			return
		}

		value := strings.TrimSpace(s.Find("img").AttrOr("src", ""))
		selected := s.HasClass("is-selected") || s.AttrOr("aria-pressed", "") == "true"

		colors = append(colors, models.VariantOption{Text: name, Selected: selected, Value: value})
	})

	return colors
}

func (a *BershkaAdapter) extractSizes(doc *goquery.Document) []models.VariantOption {
	var sizes []models.VariantOption

	doc.Find("ul.sizes-list li, .size-selector button").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find(".text__label").Text())
		if label == "" {
			label = strings.TrimSpace(s.Text())
		}
		if label == "" {
			return
		}

		// Sold-out state rides along as free text, e.g. "M Sold out".
		selected := s.HasClass("is-selected")
		sizes = append(sizes, models.VariantOption{Text: label, Selected: selected})
	})

	return sizes
}
