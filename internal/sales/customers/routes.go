package customers

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/customers", h.List)
	r.Post("/customers", h.Create)
	r.Get("/customers/{id}", h.Show)
	r.Patch("/customers/{id}", h.Update)
	r.Delete("/customers/{id}", h.Delete)
	r.Get("/customers/{id}/notes", h.ListNotes)
	r.Post("/customers/{id}/notes", h.AddNote)
	r.Post("/customers/{id}/contact", h.RecordContact)
}
