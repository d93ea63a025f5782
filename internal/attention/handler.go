package attention

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/handydesk/handydesk/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/attention/jobs", h.Jobs)
	r.Get("/attention/leads", h.Leads)
	r.Get("/attention/contact-needed", h.ContactNeeded)
	r.Get("/attention/drafts", h.Drafts)
	r.Get("/dashboard", h.Dashboard)
}

func (h *Handler) write(w http.ResponseWriter, v any, err error) {
	if err != nil {
		h.logger.Error("attention query failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) Jobs(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.JobFlags(r.Context())
	h.write(w, list, err)
}

func (h *Handler) Leads(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Leads(r.Context())
	h.write(w, list, err)
}

func (h *Handler) ContactNeeded(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ContactNeeded(r.Context())
	h.write(w, list, err)
}

func (h *Handler) Drafts(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.StaleDrafts(r.Context())
	h.write(w, list, err)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Dashboard(r.Context())
	h.write(w, d, err)
}
