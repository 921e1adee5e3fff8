package router

import (
	"net/url"
	"strings"

	"github.com/shoplens/shoplens/internal/extract"
	"github.com/shoplens/shoplens/internal/registry"
)

// Resolution is the outcome of classifying a user-supplied URL string.
// IsProductPage is a pre-load heuristic from the adapter's URL predicate;
// the extraction run against real page content supersedes it.
type Resolution struct {
	IsValid       bool   `json:"is_valid"`
	RetailerIndex int    `json:"retailer_index"`
	RetailerName  string `json:"retailer_name,omitempty"`
	NormalizedURL string `json:"normalized_url,omitempty"`
	IsProductPage bool   `json:"is_product_page"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// Router validates, normalizes and classifies raw URL input against the
// retailer registry. Pure: same input always yields the same resolution.
type Router struct {
	registry *registry.Registry
	adapters *extract.Set
}

func New(reg *registry.Registry, adapters *extract.Set) *Router {
	return &Router{registry: reg, adapters: adapters}
}

const (
	msgEmptyInput          = "enter a link to a shop"
	msgMalformed           = "that doesn't look like a valid link"
	msgUnsupportedRetailer = "this shop isn't supported yet"
	msgNotShoppingLink     = "not recognized as a shopping link"
)

// ProcessURL resolves arbitrary user input to a supported retailer.
// Input without a scheme is assumed https. The leading www. is stripped
// for registry comparison only, never from the normalized output.
func (r *Router) ProcessURL(raw string) Resolution {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Resolution{RetailerIndex: -1, ErrorMessage: msgEmptyInput}
	}

	if !strings.Contains(input, "://") {
		if strings.HasPrefix(input, "//") {
			input = "https:" + input
		} else {
			input = "https://" + input
		}
	}

	parsed, err := url.Parse(input)
	if err != nil || parsed.Host == "" || !strings.Contains(parsed.Host, ".") {
		return Resolution{RetailerIndex: -1, ErrorMessage: msgMalformed}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Resolution{RetailerIndex: -1, ErrorMessage: msgMalformed}
	}

	host := strings.ToLower(parsed.Hostname())
	index, retailer, found := r.registry.LookupByDomain(host)
	if !found {
		if looksLikeAnyProductPath(parsed.Path) {
			return Resolution{RetailerIndex: -1, ErrorMessage: msgUnsupportedRetailer}
		}
		return Resolution{RetailerIndex: -1, ErrorMessage: msgNotShoppingLink}
	}

	adapter := r.adapters.ForRetailer(retailer.Name)

	return Resolution{
		IsValid:       true,
		RetailerIndex: index,
		RetailerName:  retailer.Name,
		NormalizedURL: parsed.String(),
		IsProductPage: adapter.LooksLikeProductURL(parsed.Path),
	}
}

var productishMarkers = []string{"/product/", "/products/", "/p/", "/item/"}

func looksLikeAnyProductPath(path string) bool {
	path = strings.ToLower(path)
	for _, marker := range productishMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}
