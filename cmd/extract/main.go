package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shoplens/shoplens/internal/browser"
	"github.com/shoplens/shoplens/internal/extract"
	"github.com/shoplens/shoplens/internal/registry"
	"github.com/shoplens/shoplens/internal/router"
	"github.com/shoplens/shoplens/pkg/logger"
)

// One-shot extraction: load a single product URL in the embedded browser,
// run the matching adapter and print the canonical record as JSON.
func main() {
	var (
		rawURL   = flag.String("url", "", "Product page URL to extract")
		headless = flag.Bool("headless", true, "Run browser in headless mode")
		timeout  = flag.Duration("timeout", 30*time.Second, "Navigation timeout")
		logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	if *rawURL == "" {
		fmt.Println("Usage: extract -url <product page URL>")
		flag.Usage()
		os.Exit(1)
	}

	logg := logger.New(*logLevel, "text")

	reg := registry.New()
	adapters := extract.NewSet()
	rt := router.New(reg, adapters)

	resolution := rt.ProcessURL(*rawURL)
	if !resolution.IsValid {
		log.Fatalf("Cannot resolve URL: %s", resolution.ErrorMessage)
	}

	opts := browser.DefaultOptions()
	opts.Headless = *headless
	opts.Timeout = *timeout

	b, err := browser.New(opts)
	if err != nil {
		log.Fatalf("Failed to start browser: %v", err)
	}
	defer b.Close()

	session, err := b.NewSession(nil)
	if err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}
	defer session.Close()

	logg.Info("navigating", "url", resolution.NormalizedURL, "retailer", resolution.RetailerName)
	if err := session.Navigate(resolution.NormalizedURL); err != nil {
		log.Fatalf("Navigation failed: %v", err)
	}

	html, err := session.Content()
	if err != nil {
		log.Fatalf("Failed to read page: %v", err)
	}

	page, err := extract.NewPageContext(session.CurrentURL(), html)
	if err != nil {
		log.Fatalf("Failed to parse page: %v", err)
	}

	adapter := adapters.ForRetailer(resolution.RetailerName)
	product := adapter.Extract(page)

	out, err := json.MarshalIndent(product, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))

	if !product.Usable() {
		os.Exit(2)
	}
}
