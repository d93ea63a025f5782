package settings

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/ai", h.ShowAI)
		r.Put("/ai/key", h.SetAPIKey)
		r.Delete("/ai/key", h.ClearAPIKey)
		r.Put("/ai/offline", h.SetOffline)
		r.Get("/logo", h.ShowLogo)
		r.Put("/logo", h.SetLogo)
		r.Get("/business", h.ShowBusiness)
		r.Put("/business", h.SetBusiness)
		r.Get("/notifications", h.ShowNotifications)
		r.Put("/notifications", h.SetNotifications)
	})
}
