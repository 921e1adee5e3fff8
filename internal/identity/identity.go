package identity

import "github.com/shoplens/shoplens/internal/models"

// Key identifies a cart/favorite line. Two records with the same key are
// the same line even when their variant selections differ; variant choice
// is deliberately excluded so re-adding with a new size replaces rather
// than duplicates.
type Key struct {
	URL   string `json:"url"`
	Brand string `json:"brand"`
	Ref   string `json:"ref"` // SKU when present, title otherwise
}

// KeyOf derives the identity key from a product snapshot.
func KeyOf(p *models.ProductInfo) Key {
	ref := p.SKU
	if ref == "" {
		ref = p.Title
	}
	return Key{URL: p.URL, Brand: p.Brand, Ref: ref}
}

// Same reports whether two snapshots refer to the same cart/favorite line.
func Same(a, b *models.ProductInfo) bool {
	return KeyOf(a) == KeyOf(b)
}
