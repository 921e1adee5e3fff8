package monitor

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shoplens/shoplens/internal/extract"
	"github.com/shoplens/shoplens/internal/models"
	"github.com/shoplens/shoplens/internal/router"
)

// Surface is the embedded-browser capability the monitor drives. The
// concrete implementation lives in internal/browser; tests use a fake.
type Surface interface {
	Navigate(url string) error
	Reload() error
	GoBack() error
	GoForward() error
	CanGoBack() bool
	CanGoForward() bool
	CurrentURL() string
	Content() (string, error)
}

// State of the current navigation cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateProductDetected
	StateSettled
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateProductDetected:
		return "product_detected"
	case StateSettled:
		return "settled"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// DefaultLoadTimeout bounds how long the loading affordance may stay up
// without a terminal outcome.
const DefaultLoadTimeout = 5 * time.Second

// Monitor owns one embedded browser session. It serializes every state
// transition under a single mutex since the browser delivers events on its
// own goroutines, and associates each navigation with a sequence number so
// outcomes of a superseded navigation are discarded instead of delivered.
type Monitor struct {
	surface  Surface
	router   *router.Router
	adapters *extract.Set
	logger   *slog.Logger
	timeout  time.Duration

	mu         sync.Mutex
	seq        uint64
	state      State
	loading    bool
	dismissed  bool
	product    *models.ProductInfo
	currentURL string
	timer      *time.Timer

	loadingSubs []func(bool)
	productSubs []func(*models.ProductInfo)
	urlSubs     []func(string)
}

type Options struct {
	LoadTimeout time.Duration
}

func New(surface Surface, rt *router.Router, adapters *extract.Set, logger *slog.Logger, opts *Options) *Monitor {
	timeout := DefaultLoadTimeout
	if opts != nil && opts.LoadTimeout > 0 {
		timeout = opts.LoadTimeout
	}
	return &Monitor{
		surface:  surface,
		router:   rt,
		adapters: adapters,
		logger:   logger.With("component", "monitor"),
		timeout:  timeout,
	}
}

// OnLoadingStateChanged subscribes to the loading stream. Not safe to call
// concurrently with navigation; wire subscribers up front.
func (m *Monitor) OnLoadingStateChanged(fn func(bool)) {
	m.loadingSubs = append(m.loadingSubs, fn)
}

// OnProductInfoChanged subscribes to the product stream. nil means the
// current page yielded no product.
func (m *Monitor) OnProductInfoChanged(fn func(*models.ProductInfo)) {
	m.productSubs = append(m.productSubs, fn)
}

// OnURLChanged subscribes to address changes, including SPA navigation.
func (m *Monitor) OnURLChanged(fn func(string)) {
	m.urlSubs = append(m.urlSubs, fn)
}

// Initialize starts the first navigation.
func (m *Monitor) Initialize(url string) error {
	return m.LoadURL(url)
}

// LoadURL begins a navigation. Any prior still-settling navigation is
// superseded: its timer and its eventual extraction result become no-ops.
func (m *Monitor) LoadURL(url string) error {
	m.beginNavigation()
	if err := m.surface.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	return nil
}

// NavigationStarted is called by the surface binding when the browser
// begins a load it initiated itself (back/forward, reload, link click).
func (m *Monitor) NavigationStarted(url string) {
	m.beginNavigation()
}

func (m *Monitor) beginNavigation() {
	var emit []func()
	m.mu.Lock()

	m.seq++
	seq := m.seq
	m.state = StateLoading
	m.dismissed = false

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	if m.product != nil {
		m.product = nil
		emit = append(emit, m.emitProductLocked(nil))
	}
	if !m.loading {
		m.loading = true
		emit = append(emit, m.emitLoadingLocked(true))
	}

	// Stopping the timer is best-effort across goroutines; the seq check in
	// onTimeout is what actually invalidates a stale timer.
	m.timer = time.AfterFunc(m.timeout, func() { m.onTimeout(seq) })

	m.mu.Unlock()
	run(emit)
}

// NavigationFinished is called by the surface binding once the page has
// loaded. It snapshots the page, runs the matching adapter, and settles
// the navigation, unless a newer navigation superseded it meanwhile.
func (m *Monitor) NavigationFinished(url string) {
	m.mu.Lock()
	seq := m.seq
	m.mu.Unlock()

	product := m.extract(url)

	var emit []func()
	m.mu.Lock()
	if seq != m.seq || m.state != StateLoading {
		m.mu.Unlock()
		return
	}

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	if product.Usable() {
		m.state = StateProductDetected
		m.product = product
		emit = append(emit, m.emitProductLocked(product))
	} else {
		m.state = StateSettled
		m.product = nil
		emit = append(emit, m.emitProductLocked(nil))
	}

	if m.loading {
		m.loading = false
		emit = append(emit, m.emitLoadingLocked(false))
	}

	m.mu.Unlock()
	run(emit)
}

// extract snapshots page content and runs the retailer's adapter. Failures
// degrade to "not a product page", never to an error surfaced upward.
func (m *Monitor) extract(url string) *models.ProductInfo {
	resolution := m.router.ProcessURL(url)
	if !resolution.IsValid {
		return models.NewProductInfo(url)
	}

	html, err := m.surface.Content()
	if err != nil {
		m.logger.Error("failed to snapshot page content", "url", url, "error", err)
		return models.NewProductInfo(url)
	}

	page, err := extract.NewPageContext(url, html)
	if err != nil {
		m.logger.Error("failed to parse page content", "url", url, "error", err)
		return models.NewProductInfo(url)
	}

	adapter := m.adapters.ForRetailer(resolution.RetailerName)
	product := adapter.Extract(page)
	m.logger.Debug("extraction finished",
		"url", url,
		"adapter", adapter.Name(),
		"is_product_page", product.IsProductPage,
		"success", product.Success)
	return product
}

// URLChanged is called by the surface binding on any address change,
// including client-side routing. When it fires outside a load cycle, a
// previously shown product no longer matches the page and is cleared.
func (m *Monitor) URLChanged(url string) {
	var emit []func()
	m.mu.Lock()

	if url != m.currentURL {
		m.currentURL = url
		emit = append(emit, m.emitURLLocked(url))
	}

	if !m.loading && m.product != nil {
		m.product = nil
		emit = append(emit, m.emitProductLocked(nil))
	}

	m.mu.Unlock()
	run(emit)
}

// DismissLoading is the user closing the loading affordance. The dismissal
// sticks to the current navigation so its own timer cannot re-assert
// anything later.
func (m *Monitor) DismissLoading() {
	var emit []func()
	m.mu.Lock()

	m.dismissed = true
	if m.loading {
		m.loading = false
		emit = append(emit, m.emitLoadingLocked(false))
	}

	m.mu.Unlock()
	run(emit)
}

func (m *Monitor) onTimeout(seq uint64) {
	var emit []func()
	m.mu.Lock()

	if seq != m.seq || m.state != StateLoading {
		m.mu.Unlock()
		return
	}

	m.state = StateTimedOut
	if m.loading && !m.dismissed {
		m.loading = false
		emit = append(emit, m.emitLoadingLocked(false))
	}

	m.mu.Unlock()
	run(emit)
}

// CurrentProduct returns the product shown for the current page, nil when
// none.
func (m *Monitor) CurrentProduct() *models.ProductInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.product
}

// CurrentState returns the state of the current navigation cycle.
func (m *Monitor) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loading reports whether the loading affordance is up.
func (m *Monitor) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Monitor) CanGoBack() bool    { return m.surface.CanGoBack() }
func (m *Monitor) CanGoForward() bool { return m.surface.CanGoForward() }

// GoBack navigates history back; a no-op when unavailable. The resulting
// navigation emits through the ordinary load path.
func (m *Monitor) GoBack() {
	if m.surface.CanGoBack() {
		if err := m.surface.GoBack(); err != nil {
			m.logger.Error("failed to go back", "error", err)
		}
	}
}

// GoForward navigates history forward; a no-op when unavailable.
func (m *Monitor) GoForward() {
	if m.surface.CanGoForward() {
		if err := m.surface.GoForward(); err != nil {
			m.logger.Error("failed to go forward", "error", err)
		}
	}
}

// Reload reloads the current page.
func (m *Monitor) Reload() {
	if err := m.surface.Reload(); err != nil {
		m.logger.Error("failed to reload", "error", err)
	}
}

func (m *Monitor) emitLoadingLocked(loading bool) func() {
	subs := m.loadingSubs
	return func() {
		for _, fn := range subs {
			fn(loading)
		}
	}
}

func (m *Monitor) emitProductLocked(p *models.ProductInfo) func() {
	subs := m.productSubs
	return func() {
		for _, fn := range subs {
			fn(p)
		}
	}
}

func (m *Monitor) emitURLLocked(url string) func() {
	subs := m.urlSubs
	return func() {
		for _, fn := range subs {
			fn(url)
		}
	}
}

// run invokes queued emissions outside the monitor mutex so subscribers may
// call back into the monitor.
func run(emit []func()) {
	for _, fn := range emit {
		fn()
	}
}
