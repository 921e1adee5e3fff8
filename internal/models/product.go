package models

// VariantGroupColors and VariantGroupSizes are the group names adapters use
// for the two common choice axes. The group set is open; adapters may
// introduce more.
const (
	VariantGroupColors = "colors"
	VariantGroupSizes  = "sizes"
)

// ProductInfo is the canonical, retailer-agnostic snapshot of a product
// page. One instance is produced per page load and never mutated after
// construction. Consumers must check both Success and IsProductPage before
// treating it as a product.
type ProductInfo struct {
	URL              string                     `json:"url"`
	IsProductPage    bool                       `json:"is_product_page"`
	Success          bool                       `json:"success"`
	Title            string                     `json:"title,omitempty"`
	Price            float64                    `json:"price,omitempty"`
	OriginalPrice    float64                    `json:"original_price,omitempty"`
	Currency         string                     `json:"currency,omitempty"`
	ImageURL         string                     `json:"image_url,omitempty"`
	Description      string                     `json:"description,omitempty"`
	SKU              string                     `json:"sku,omitempty"`
	Availability     string                     `json:"availability,omitempty"`
	Brand            string                     `json:"brand,omitempty"`
	ExtractionMethod string                     `json:"extraction_method,omitempty"`
	Variants         map[string][]VariantOption `json:"variants,omitempty"`
}

func NewProductInfo(url string) *ProductInfo {
	return &ProductInfo{URL: url}
}

// Usable reports whether downstream consumers may treat this record as a
// product. A loaded non-product page yields IsProductPage=false, an
// ambiguous product page yields Success=false; both must hold.
func (p *ProductInfo) Usable() bool {
	return p != nil && p.Success && p.IsProductPage
}

// HasDiscount reports whether the page showed a crossed-out original price.
// An absent OriginalPrice means no discount shown, not discount unknown.
func (p *ProductInfo) HasDiscount() bool {
	return p.OriginalPrice > 0 && p.Price > 0 && p.OriginalPrice > p.Price
}

// SetVariants normalizes and attaches one variant group. Duplicate option
// texts are dropped (first occurrence kept) and at most one option stays
// selected; if the page marked several, the last one wins.
func (p *ProductInfo) SetVariants(group string, options []VariantOption) {
	if len(options) == 0 {
		return
	}

	seen := make(map[string]int, len(options))
	normalized := make([]VariantOption, 0, len(options))
	lastSelected := -1

	for _, opt := range options {
		if idx, dup := seen[opt.Text]; dup {
			if opt.Selected {
				lastSelected = idx
			}
			continue
		}
		seen[opt.Text] = len(normalized)
		if opt.Selected {
			lastSelected = len(normalized)
		}
		normalized = append(normalized, opt)
	}

	for i := range normalized {
		normalized[i].Selected = i == lastSelected
	}

	if p.Variants == nil {
		p.Variants = make(map[string][]VariantOption)
	}
	p.Variants[group] = normalized
}

// SelectedVariant returns the pre-selected option of a group, if any.
func (p *ProductInfo) SelectedVariant(group string) (VariantOption, bool) {
	for _, opt := range p.Variants[group] {
		if opt.Selected {
			return opt, true
		}
	}
	return VariantOption{}, false
}
