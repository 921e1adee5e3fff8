package models

import (
	"encoding/json"
	"regexp"
	"strings"
)

// VariantOption is one selectable option inside a variant group. Selected
// reflects what the page showed as pre-selected at extraction time, not the
// user's current UI choice. Value is an opaque, retailer-specific string;
// ParseValue interprets it.
type VariantOption struct {
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	Value    string `json:"value,omitempty"`
}

// VariantValueKind tags the parsed form of a VariantOption value.
type VariantValueKind int

const (
	ValueKindPlainText VariantValueKind = iota
	ValueKindStructured
	ValueKindRGBColor
	ValueKindImageRef
)

// StructuredValue is the JSON object some retailers embed in a variant
// value. All fields are optional; InStock is a pointer so absence stays
// distinguishable from false.
type StructuredValue struct {
	InStock    *bool  `json:"inStock,omitempty"`
	SizeValue  string `json:"sizeValue,omitempty"`
	SizeAttr   string `json:"sizeAttr,omitempty"`
	ColorClass string `json:"colorClass,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Href       string `json:"href,omitempty"`
}

// VariantValue is the parsed form of an opaque variant value string,
// produced once at interpretation time rather than re-parsed at every
// consumption site.
type VariantValue struct {
	Kind       VariantValueKind
	Text       string
	RGB        string
	ImageURL   string
	Structured *StructuredValue
}

var rgbPattern = regexp.MustCompile(`^rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(?:,\s*[\d.]+\s*)?\)$`)

// ParseValue interprets the opaque value in the fixed precedence:
// JSON object, rgb() literal, absolute or protocol-relative image URL,
// plain label.
func (o VariantOption) ParseValue() VariantValue {
	raw := strings.TrimSpace(o.Value)
	if raw == "" {
		return VariantValue{Kind: ValueKindPlainText, Text: o.Text}
	}

	if strings.HasPrefix(raw, "{") {
		var sv StructuredValue
		if err := json.Unmarshal([]byte(raw), &sv); err == nil {
			return VariantValue{Kind: ValueKindStructured, Structured: &sv}
		}
	}

	if rgbPattern.MatchString(raw) {
		return VariantValue{Kind: ValueKindRGBColor, RGB: raw}
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "//") {
		img := raw
		if strings.HasPrefix(img, "//") {
			img = "https:" + img
		}
		return VariantValue{Kind: ValueKindImageRef, ImageURL: img}
	}

	return VariantValue{Kind: ValueKindPlainText, Text: raw}
}

var outOfStockPhrases = []string{
	"out of stock",
	"sold out",
	"not available",
	"unavailable",
	"agotado",
	"esgotado",
	"ausverkauft",
}

// InStock reports whether the option can be bought. A structured inStock
// flag wins over any free text. Unknown encodings default to in stock:
// hiding a buyable size costs more than showing a sold-out one.
func (o VariantOption) InStock() bool {
	if v := o.ParseValue(); v.Kind == ValueKindStructured && v.Structured.InStock != nil {
		return *v.Structured.InStock
	}

	text := strings.ToLower(o.Text + " " + o.Value)
	for _, phrase := range outOfStockPhrases {
		if strings.Contains(text, phrase) {
			return false
		}
	}
	return true
}
