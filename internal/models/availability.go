package models

import "strings"

// Availability tokens as they appear on product pages, schema.org style.
const (
	AvailabilityInStock             = "InStock"
	AvailabilityOutOfStock          = "OutOfStock"
	AvailabilityLimitedAvailability = "LimitedAvailability"
	AvailabilityPreOrder            = "PreOrder"
)

var availabilityLabels = map[string]string{
	"InStock":             "In Stock",
	"OutOfStock":          "Out of Stock",
	"LimitedAvailability": "Limited Availability",
	"PreOrder":            "Pre-Order",
	"PreSale":             "Pre-Sale",
	"BackOrder":           "Back Order",
	"SoldOut":             "Sold Out",
	"Discontinued":        "Discontinued",
	"OnlineOnly":          "Online Only",
	"InStoreOnly":         "In Store Only",
}

// FormatAvailability maps a raw availability token to a display label.
// Tokens may carry a schema.org URL prefix ("http://schema.org/OutOfStock")
// which is stripped first. Unknown tokens are split on camel-case
// boundaries rather than dropped.
func FormatAvailability(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}

	for _, prefix := range []string{"http://schema.org/", "https://schema.org/", "schema.org/"} {
		if strings.HasPrefix(token, prefix) {
			token = strings.TrimPrefix(token, prefix)
			break
		}
	}

	if label, ok := availabilityLabels[token]; ok {
		return label
	}
	return splitCamelCase(token)
}

func splitCamelCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := rune(s[i-1])
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
