package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shoplens/shoplens/internal/models"
)

// ZaraAdapter handles zara.com product pages. Zara exposes clean JSON-LD
// for the base fields; color swatches carry rgb() literals in inline
// styles and size buttons flag stock through a data-qa-action attribute.
type ZaraAdapter struct {
	productPath *regexp.Regexp
	rgbStyle    *regexp.Regexp
}

func NewZaraAdapter() *ZaraAdapter {
	return &ZaraAdapter{
		productPath: regexp.MustCompile(`-p\d{6,}\.html$`),
		rgbStyle:    regexp.MustCompile(`rgba?\([^)]*\)`),
	}
}

func (a *ZaraAdapter) Name() string {
	return "zara"
}

func (a *ZaraAdapter) LooksLikeProductURL(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return a.productPath.MatchString(path) || strings.Contains(path, "/product/")
}

func (a *ZaraAdapter) Extract(page *PageContext) *models.ProductInfo {
	product := models.NewProductInfo(page.URL)
	product.ExtractionMethod = a.Name()
	product.Brand = "Zara"

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
		product.Title = firstText(page.Doc, ".product-detail-info__header-name", "h1.product-name", "h1")
	}
	if product.Price == 0 {
		amount, currency := parsePriceText(firstText(page.Doc, ".price-current__amount", ".price__amount", ".product-detail-info .price"))
		product.Price = amount
		if product.Currency == "" {
			product.Currency = currency
		}
	}
	if original, _ := parsePriceText(firstText(page.Doc, ".price-old__amount", ".price__amount--old")); original > 0 {
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

func (a *ZaraAdapter) extractColors(doc *goquery.Document) []models.VariantOption {
	var colors []models.VariantOption

	doc.Find(".product-detail-color-selector__color").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Find(".screen-reader-text").Text())
		if name == "" {
			name = strings.TrimSpace(s.AttrOr("aria-label", ""))
		}
		if name == "" {
			return
		}

		value := ""
		if style, ok := s.Find(".product-detail-color-selector__color-area").Attr("style"); ok {
			value = a.rgbStyle.FindString(style)
		}
		if value == "" {
			if style, ok := s.Attr("style"); ok {
				value = a.rgbStyle.FindString(style)
			}
		}

		selected := s.HasClass("product-detail-color-selector__color--is-selected") ||
			s.AttrOr("aria-current", "") == "true"

		colors = append(colors, models.VariantOption{Text: name, Selected: selected, Value: value})
	})

	return colors
}

func (a *ZaraAdapter) extractSizes(doc *goquery.Document) []models.VariantOption {
	var sizes []models.VariantOption

	doc.Find(".size-selector-list__item").Each(func(_ int, s *goquery.Selection) {
		button := s.Find("button").First()
		label := strings.TrimSpace(button.Find(".product-size-info__main-label").Text())
		if label == "" {
			label = strings.TrimSpace(button.Text())
		}
		if label == "" {
			return
		}

		action := button.AttrOr("data-qa-action", "")
		value := ""
		if action == "size-out-of-stock" {
			value = `{"inStock": false}`
		} else if action == "size-in-stock" {
			value = `{"inStock": true}`
		}

		selected := s.HasClass("size-selector-list__item--is-selected") ||
			button.AttrOr("aria-checked", "") == "true"

		sizes = append(sizes, models.VariantOption{Text: label, Selected: selected, Value: value})
	})

	return sizes
}
