package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shoplens/shoplens/internal/models"
	"github.com/shoplens/shoplens/internal/monitor"
	"github.com/shoplens/shoplens/internal/registry"
	"github.com/shoplens/shoplens/internal/router"
	"github.com/shoplens/shoplens/internal/settings"
	"github.com/shoplens/shoplens/internal/store"
)

// Handlers exposes the engine to a UI shell over HTTP. The monitor is
// optional: a deployment without an embedded browser still serves URL
// resolution, collections and settings.
type Handlers struct {
	registry  *registry.Registry
	router    *router.Router
	monitor   *monitor.Monitor
	cart      *store.Collection
	favorites *store.Collection
	settings  settings.Store
	logger    *slog.Logger
}

func NewHandlers(
	reg *registry.Registry,
	rt *router.Router,
	mon *monitor.Monitor,
	cart, favorites *store.Collection,
	settingsStore settings.Store,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		registry:  reg,
		router:    rt,
		monitor:   mon,
		cart:      cart,
		favorites: favorites,
		settings:  settingsStore,
		logger:    logger.With("component", "api"),
	}
}

type resolveRequest struct {
	URL string `json:"url"`
}

// ResolveURL classifies a user-supplied URL string.
func (h *Handlers) ResolveURL(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.respondJSON(w, http.StatusOK, h.router.ProcessURL(req.URL))
}

// ListRetailers returns the supported retailer table.
func (h *Handlers) ListRetailers(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.registry.All())
}

// SearchURL builds a retailer search URL from a query.
func (h *Handlers) SearchURL(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid retailer index")
		return
	}

	query := r.URL.Query().Get("q")
	url, ok := h.registry.SearchURL(index, query)
	if !ok {
		h.respondError(w, http.StatusNotFound, "unknown retailer")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

type navigateRequest struct {
	URL string `json:"url"`
}

// Navigate begins a browser navigation through the monitor.
func (h *Handlers) Navigate(w http.ResponseWriter, r *http.Request) {
	if h.monitor == nil {
		h.respondError(w, http.StatusServiceUnavailable, "no browser session")
		return
	}

	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resolution := h.router.ProcessURL(req.URL)
	if !resolution.IsValid {
		h.respondError(w, http.StatusUnprocessableEntity, resolution.ErrorMessage)
		return
	}

	if err := h.monitor.LoadURL(resolution.NormalizedURL); err != nil {
		h.logger.Error("navigation failed", "url", resolution.NormalizedURL, "error", err)
		h.respondError(w, http.StatusBadGateway, "navigation failed")
		return
	}

	h.respondJSON(w, http.StatusOK, resolution)
}

// productView decorates the canonical record with display-ready fields.
type productView struct {
	*models.ProductInfo
	AvailabilityLabel string `json:"availability_label,omitempty"`
}

func viewOf(p *models.ProductInfo) *productView {
	if p == nil {
		return nil
	}
	return &productView{
		ProductInfo:       p,
		AvailabilityLabel: models.FormatAvailability(p.Availability),
	}
}

type sessionState struct {
	State        string       `json:"state"`
	Loading      bool         `json:"loading"`
	CanGoBack    bool         `json:"can_go_back"`
	CanGoForward bool         `json:"can_go_forward"`
	Product      *productView `json:"product,omitempty"`
}

// Session reports the monitor's current state and product.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	if h.monitor == nil {
		h.respondError(w, http.StatusServiceUnavailable, "no browser session")
		return
	}

	h.respondJSON(w, http.StatusOK, sessionState{
		State:        h.monitor.CurrentState().String(),
		Loading:      h.monitor.Loading(),
		CanGoBack:    h.monitor.CanGoBack(),
		CanGoForward: h.monitor.CanGoForward(),
		Product:      viewOf(h.monitor.CurrentProduct()),
	})
}

func (h *Handlers) GoBack(w http.ResponseWriter, r *http.Request) {
	if h.monitor == nil {
		h.respondError(w, http.StatusServiceUnavailable, "no browser session")
		return
	}
	h.monitor.GoBack()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) GoForward(w http.ResponseWriter, r *http.Request) {
	if h.monitor == nil {
		h.respondError(w, http.StatusServiceUnavailable, "no browser session")
		return
	}
	h.monitor.GoForward()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Reload(w http.ResponseWriter, r *http.Request) {
	if h.monitor == nil {
		h.respondError(w, http.StatusServiceUnavailable, "no browser session")
		return
	}
	h.monitor.Reload()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DismissLoading(w http.ResponseWriter, r *http.Request) {
	if h.monitor == nil {
		h.respondError(w, http.StatusServiceUnavailable, "no browser session")
		return
	}
	h.monitor.DismissLoading()
	w.WriteHeader(http.StatusNoContent)
}

// collection routes one product-list collection (cart or favorites).

func (h *Handlers) listCollection(c *store.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products := c.List()
		views := make([]*productView, len(products))
		for i := range products {
			views[i] = viewOf(&products[i])
		}
		h.respondJSON(w, http.StatusOK, views)
	}
}

func (h *Handlers) addToCollection(c *store.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product models.ProductInfo
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !product.Usable() {
			h.respondError(w, http.StatusUnprocessableEntity, "record is not a usable product")
			return
		}

		if !c.Add(r.Context(), &product) {
			h.respondError(w, http.StatusInternalServerError, "failed to save")
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]bool{"added": true})
	}
}

func (h *Handlers) removeFromCollection(c *store.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product models.ProductInfo
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		removed, ok := c.Remove(r.Context(), &product)
		if !ok {
			h.respondError(w, http.StatusInternalServerError, "failed to save")
			return
		}
		h.respondJSON(w, http.StatusOK, map[string]bool{"removed": removed})
	}
}

func (h *Handlers) clearCollection(c *store.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !c.Clear(r.Context()) {
			h.respondError(w, http.StatusInternalServerError, "failed to save")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetSetting reads one settings key.
func (h *Handlers) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := h.settings.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "setting not found")
			return
		}
		h.logger.Error("failed to read setting", "key", key, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to read setting")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

type settingRequest struct {
	Value string `json:"value"`
}

// PutSetting writes one settings key.
func (h *Handlers) PutSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req settingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settings.Set(r.Context(), key, req.Value); err != nil {
		h.logger.Error("failed to write setting", "key", key, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to write setting")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
