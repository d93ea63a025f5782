package lineitems

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/line-items", h.List)
	r.Post("/line-items", h.Create)
	r.Get("/line-items/suggest", h.Suggest)
	r.Get("/line-items/{id}", h.Show)
	r.Patch("/line-items/{id}", h.Update)
	r.Delete("/line-items/{id}", h.Delete)
}
