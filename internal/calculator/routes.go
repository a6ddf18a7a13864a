package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, store *Store) {
	h := NewHandlers(store)

	r.Route("/calculator", func(r chi.Router) {
		r.Post("/evaluate", h.EvaluateOp)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Post("/press", h.Press)
				r.Post("/keys", h.PressKeys)
			})
		})
	})
}
