package requests

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/requests", h.List)
	r.Post("/requests", h.Create)
	r.Get("/requests/{id}", h.Show)
	r.Patch("/requests/{id}", h.Update)
	r.Delete("/requests/{id}", h.Delete)
	r.Get("/requests/{id}/notes", h.ListNotes)
	r.Post("/requests/{id}/notes", h.AddNote)
}
