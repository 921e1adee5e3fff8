package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// flexString tolerates JSON-LD fields that appear as a string, a number, or
// an array of strings depending on the site.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case '[':
		var arr []flexString
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		if len(arr) > 0 {
			*f = arr[0]
		}
	case '{':
		var obj struct {
			Name flexString `json:"name"`
			URL  flexString `json:"url"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Name != "" {
			*f = obj.Name
		} else {
			*f = obj.URL
		}
	default:
		*f = flexString(data)
	}
	return nil
}

func (f flexString) String() string { return string(f) }

type ldOffer struct {
	Price        flexString `json:"price"`
	LowPrice     flexString `json:"lowPrice"`
	Currency     flexString `json:"priceCurrency"`
	Availability flexString `json:"availability"`
}

func (o *ldOffer) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		if len(arr) == 0 {
			return nil
		}
		data = arr[0]
	}

	type plain ldOffer
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = ldOffer(p)
	return nil
}

type ldProduct struct {
	Type        flexString `json:"@type"`
	Name        flexString `json:"name"`
	Description flexString `json:"description"`
	SKU         flexString `json:"sku"`
	Brand       flexString `json:"brand"`
	Image       flexString `json:"image"`
	Offers      *ldOffer   `json:"offers"`
}

// findJSONLDProduct scans the page's ld+json script blocks for a schema.org
// Product node. Blocks may hold a single node, an array, or an @graph.
func findJSONLDProduct(doc *goquery.Document) (*ldProduct, bool) {
	var found *ldProduct

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}

		for _, candidate := range expandJSONLD(raw) {
			var p ldProduct
			if err := json.Unmarshal(candidate, &p); err != nil {
				continue
			}
			if strings.EqualFold(p.Type.String(), "Product") {
				found = &p
				return false
			}
		}
		return true
	})

	return found, found != nil
}

func expandJSONLD(raw string) []json.RawMessage {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(trimmed), &arr); err != nil {
			return nil
		}
		return arr
	}

	var graph struct {
		Graph []json.RawMessage `json:"@graph"`
	}
	if err := json.Unmarshal([]byte(trimmed), &graph); err == nil && len(graph.Graph) > 0 {
		return graph.Graph
	}

	return []json.RawMessage{json.RawMessage(trimmed)}
}

var priceAmountPattern = regexp.MustCompile(`(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?)`)

var currencySymbols = map[string]string{
	"€":   "EUR",
	"$":   "USD",
	"£":   "GBP",
	"¥":   "JPY",
	"zł":  "PLN",
	"kr":  "SEK",
	"EUR": "EUR",
	"USD": "USD",
	"GBP": "GBP",
}

// parsePriceText extracts an amount and, when recognizable, a currency from
// free-form price text like "29,95 €" or "$1,299.00".
func parsePriceText(text string) (float64, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ""
	}

	currency := ""
	for symbol, code := range currencySymbols {
		if strings.Contains(text, symbol) {
			currency = code
			break
		}
	}

	match := priceAmountPattern.FindString(text)
	if match == "" {
		return 0, currency
	}
	return parseAmount(match), currency
}

// parseAmount normalizes European and US digit grouping. "1.299,95" and
// "1,299.95" both come out as 1299.95.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot > lastComma:
		s = strings.ReplaceAll(s, ",", "")
	}

	val, _ := strconv.ParseFloat(s, 64)
	return val
}

// firstText returns the trimmed text of the first selector that matches.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the trimmed attribute of the first selector that has it.
func firstAttr(doc *goquery.Document, attr string, selectors ...string) string {
	for _, sel := range selectors {
		if val, ok := doc.Find(sel).First().Attr(attr); ok {
			if val = strings.TrimSpace(val); val != "" {
				return val
			}
		}
	}
	return ""
}
