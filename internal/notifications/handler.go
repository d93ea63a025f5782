package notifications

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/handydesk/handydesk/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	reload  bool
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// ReloadOnList makes List re-read the store first, for deployments where another
// process (the worker's draft check) writes notifications.
func (h *Handler) ReloadOnList() *Handler {
	h.reload = true
	return h
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/notifications", h.List)
	r.Delete("/notifications", h.Clear)
	r.Delete("/notifications/{id}", h.Remove)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.reload {
		if err := h.service.Load(r.Context()); err != nil {
			h.logger.Warn("reload notifications", slog.Any("error", err))
		}
	}
	httpx.JSON(w, http.StatusOK, h.service.List(r.Context()))
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		h.logger.Error("clear notifications failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
