package quotes

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/quotes", h.List)
	r.Post("/quotes", h.Create)
	r.Post("/quotes/preview", h.Preview)
	r.Get("/quotes/{id}", h.Show)
	r.Patch("/quotes/{id}", h.Update)
	r.Delete("/quotes/{id}", h.Delete)
	r.Get("/quotes/{id}/document", h.Document)
	r.Get("/quotes/{id}/pdf", h.PDF)
}
