package invoices

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.List)
	r.Post("/invoices", h.Create)
	r.Get("/invoices/{id}", h.Show)
	r.Patch("/invoices/{id}", h.Update)
	r.Delete("/invoices/{id}", h.Delete)
	r.Post("/invoices/{id}/pay", h.Pay)
}
