package registry

import (
	"net/url"
	"strings"
)

// Retailer describes one supported shop. A retailer may be reachable under
// several host variants (country subdomains, with and without www); Domains
// holds all of them lowercased. Loaded once at startup, immutable after.
type Retailer struct {
	Name              string   `json:"name"`
	Domains           []string `json:"domains"`
	DefaultURL        string   `json:"default_url"`
	SearchURLTemplate string   `json:"search_url_template"` // %s is the encoded query
}

// SearchURL applies the retailer's search template with a percent-encoded
// query.
func (r Retailer) SearchURL(query string) string {
	return strings.Replace(r.SearchURLTemplate, "%s", url.QueryEscape(query), 1)
}

// MatchesDomain reports whether host belongs to this retailer. A leading
// www. on the host is ignored for comparison.
func (r Retailer) MatchesDomain(host string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	for _, d := range r.Domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// Registry is the static lookup table of supported retailers.
type Registry struct {
	retailers []Retailer
}

func New() *Registry {
	return &Registry{retailers: defaultRetailers()}
}

// NewWithRetailers builds a registry from an explicit table, used by tests
// and by deployments that load the table from configuration.
func NewWithRetailers(retailers []Retailer) *Registry {
	return &Registry{retailers: retailers}
}

// All returns the retailers in their fixed display order.
func (g *Registry) All() []Retailer {
	out := make([]Retailer, len(g.retailers))
	copy(out, g.retailers)
	return out
}

// LookupByDomain resolves a host to a retailer index and definition.
// Unknown hosts return ok=false, never an error.
func (g *Registry) LookupByDomain(host string) (int, Retailer, bool) {
	for i, r := range g.retailers {
		if r.MatchesDomain(host) {
			return i, r, true
		}
	}
	return -1, Retailer{}, false
}

// ByIndex returns the retailer at index, ok=false when out of range.
func (g *Registry) ByIndex(index int) (Retailer, bool) {
	if index < 0 || index >= len(g.retailers) {
		return Retailer{}, false
	}
	return g.retailers[index], true
}

// SearchURL builds the search URL for the retailer at index.
func (g *Registry) SearchURL(index int, query string) (string, bool) {
	r, ok := g.ByIndex(index)
	if !ok {
		return "", false
	}
	return r.SearchURL(query), true
}

func defaultRetailers() []Retailer {
	return []Retailer{
		{
			Name:              "Zara",
			Domains:           []string{"zara.com", "zara.net"},
			DefaultURL:        "https://www.zara.com/",
			SearchURLTemplate: "https://www.zara.com/search?searchTerm=%s",
		},
		{
			Name:              "H&M",
			Domains:           []string{"hm.com", "www2.hm.com"},
			DefaultURL:        "https://www2.hm.com/",
			SearchURLTemplate: "https://www2.hm.com/en_us/search-results.html?q=%s",
		},
		{
			Name:              "Mango",
			Domains:           []string{"mango.com", "shop.mango.com"},
			DefaultURL:        "https://shop.mango.com/",
			SearchURLTemplate: "https://shop.mango.com/search?kw=%s",
		},
		{
			Name:              "Bershka",
			Domains:           []string{"bershka.com"},
			DefaultURL:        "https://www.bershka.com/",
			SearchURLTemplate: "https://www.bershka.com/search?q=%s",
		},
		{
			Name:              "Pull&Bear",
			Domains:           []string{"pullandbear.com"},
			DefaultURL:        "https://www.pullandbear.com/",
			SearchURLTemplate: "https://www.pullandbear.com/search?q=%s",
		},
		{
			Name:              "Stradivarius",
			Domains:           []string{"stradivarius.com"},
			DefaultURL:        "https://www.stradivarius.com/",
			SearchURLTemplate: "https://www.stradivarius.com/search?q=%s",
		},
		{
			Name:              "Massimo Dutti",
			Domains:           []string{"massimodutti.com"},
			DefaultURL:        "https://www.massimodutti.com/",
			SearchURLTemplate: "https://www.massimodutti.com/search?q=%s",
		},
	}
}
