package browser

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// NavigationEvents is what a session reports to its single listener, the
// page monitor. Callbacks arrive on playwright's event goroutines.
type NavigationEvents interface {
	NavigationStarted(url string)
	NavigationFinished(url string)
	URLChanged(url string)
}

// Session is one embedded page: the monitor's Surface implementation.
// Playwright exposes no history depth, so the session keeps its own
// back/forward position, advanced on main-frame navigations.
type Session struct {
	page   playwright.Page
	logger *slog.Logger

	mu      sync.Mutex
	history []string
	pos     int
	// set while a Navigate/GoBack/GoForward/Reload call is in flight, so
	// the frame-navigation hook knows not to grow the history twice
	traversing bool

	events NavigationEvents
}

// NewSession opens a page in the browser context and wires its navigation
// events to the given listener. events may be nil at construction and
// attached later with Bind, which breaks the session/monitor construction
// cycle.
func (b *Browser) NewSession(events NavigationEvents) (*Session, error) {
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	s := &Session{
		page:   page,
		logger: b.logger.With("component", "session"),
		pos:    -1,
		events: events,
	}

	page.OnDOMContentLoaded(func(p playwright.Page) {
		if s.events != nil {
			s.events.NavigationFinished(p.URL())
		}
	})

	page.OnFrameNavigated(func(frame playwright.Frame) {
		if frame != page.MainFrame() {
			return
		}
		url := frame.URL()
		s.recordNavigation(url)
		if s.events != nil {
			s.events.URLChanged(url)
		}
	})

	return s, nil
}

func (s *Session) recordNavigation(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.traversing {
		return
	}
	if s.pos >= 0 && s.pos < len(s.history) && s.history[s.pos] == url {
		return
	}

	s.history = append(s.history[:s.pos+1], url)
	s.pos = len(s.history) - 1
}

func (s *Session) Navigate(url string) error {
	if s.events != nil {
		s.events.NavigationStarted(url)
	}

	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *Session) Reload() error {
	if s.events != nil {
		s.events.NavigationStarted(s.page.URL())
	}

	s.setTraversing(true)
	defer s.setTraversing(false)

	if _, err := s.page.Reload(); err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	return nil
}

func (s *Session) GoBack() error {
	if !s.CanGoBack() {
		return nil
	}
	if s.events != nil {
		s.events.NavigationStarted(s.page.URL())
	}

	s.setTraversing(true)
	defer s.setTraversing(false)

	if _, err := s.page.GoBack(); err != nil {
		return fmt.Errorf("failed to go back: %w", err)
	}

	s.mu.Lock()
	s.pos--
	s.mu.Unlock()
	return nil
}

func (s *Session) GoForward() error {
	if !s.CanGoForward() {
		return nil
	}
	if s.events != nil {
		s.events.NavigationStarted(s.page.URL())
	}

	s.setTraversing(true)
	defer s.setTraversing(false)

	if _, err := s.page.GoForward(); err != nil {
		return fmt.Errorf("failed to go forward: %w", err)
	}

	s.mu.Lock()
	s.pos++
	s.mu.Unlock()
	return nil
}

func (s *Session) CanGoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos > 0
}

func (s *Session) CanGoForward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos >= 0 && s.pos < len(s.history)-1
}

func (s *Session) CurrentURL() string {
	return s.page.URL()
}

func (s *Session) Content() (string, error) {
	content, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return content, nil
}

// Bind attaches the navigation listener. Call before the first Navigate.
func (s *Session) Bind(events NavigationEvents) {
	s.events = events
}

func (s *Session) Close() error {
	return s.page.Close()
}

func (s *Session) setTraversing(v bool) {
	s.mu.Lock()
	s.traversing = v
	s.mu.Unlock()
}
