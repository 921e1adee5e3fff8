package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shoplens/shoplens/internal/models"
)

// PageContext is the already-loaded page state an adapter extracts from.
// Extraction never fetches anything itself; the embedded browser has done
// the loading.
type PageContext struct {
	URL string
	Doc *goquery.Document
}

// NewPageContext parses a page HTML snapshot for extraction.
func NewPageContext(url, html string) (*PageContext, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}
	return &PageContext{URL: url, Doc: doc}, nil
}

// Adapter is the per-retailer extraction contract. LooksLikeProductURL is a
// cheap path-shape heuristic used before any page load; Extract runs
// against real page content and is authoritative.
type Adapter interface {
	Name() string
	LooksLikeProductURL(path string) bool
	Extract(page *PageContext) *models.ProductInfo
}

// Set resolves a retailer name to its bespoke adapter, falling back to the
// generic schema.org adapter for registered retailers without one.
type Set struct {
	byRetailer map[string]Adapter
	fallback   Adapter
}

func NewSet() *Set {
	s := &Set{
		byRetailer: make(map[string]Adapter),
		fallback:   NewGenericAdapter(),
	}
	s.register("Zara", NewZaraAdapter())
	s.register("H&M", NewHMAdapter())
	s.register("Mango", NewMangoAdapter())
	s.register("Bershka", NewBershkaAdapter())
	return s
}

func (s *Set) register(retailer string, a Adapter) {
	s.byRetailer[retailer] = a
}

// ForRetailer returns the adapter for a retailer name. Every registered
// retailer gets at least the generic fallback.
func (s *Set) ForRetailer(name string) Adapter {
	if a, ok := s.byRetailer[name]; ok {
		return a
	}
	return s.fallback
}

// Fallback returns the generic schema.org adapter.
func (s *Set) Fallback() Adapter {
	return s.fallback
}
