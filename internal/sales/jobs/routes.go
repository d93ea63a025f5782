package jobs

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/jobs", h.List)
	r.Post("/jobs", h.Create)
	r.Get("/jobs/working-days", h.WorkingDays)
	r.Get("/jobs/statuses", h.Statuses)
	r.Get("/jobs/{id}", h.Show)
	r.Patch("/jobs/{id}", h.Update)
	r.Delete("/jobs/{id}", h.Delete)
	r.Post("/jobs/{id}/contact", h.RecordContact)
	r.Post("/jobs/{id}/proposal-due", h.FlagProposalDue)
	r.Delete("/jobs/{id}/proposal-due", h.FlagProposalDue)
}
