package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the HTTP surface.
func NewRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/url/resolve", h.ResolveURL)

		r.Get("/retailers", h.ListRetailers)
		r.Get("/retailers/{index}/search", h.SearchURL)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.Session)
			r.Post("/navigate", h.Navigate)
			r.Post("/back", h.GoBack)
			r.Post("/forward", h.GoForward)
			r.Post("/reload", h.Reload)
			r.Post("/dismiss-loading", h.DismissLoading)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.listCollection(h.cart))
			r.Post("/", h.addToCollection(h.cart))
			r.Delete("/", h.removeFromCollection(h.cart))
			r.Post("/clear", h.clearCollection(h.cart))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.listCollection(h.favorites))
			r.Post("/", h.addToCollection(h.favorites))
			r.Delete("/", h.removeFromCollection(h.favorites))
			r.Post("/clear", h.clearCollection(h.favorites))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/{key}", h.GetSetting)
			r.Put("/{key}", h.PutSetting)
		})
	})

	return r
}
