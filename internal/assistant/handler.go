package assistant

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
	r.Get("/assistant/personas", h.Personas)
	r.Post("/assistant/chat", h.Chat)
}

type chatPayload struct {
	Persona  string    `json:"persona" validate:"required"`
	Messages []Message `json:"messages" validate:"required,min=1,dive"`
}

func (h *Handler) Personas(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, Personas())
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatPayload
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	reply, err := h.service.Chat(r.Context(), req.Persona, req.Messages)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, reply)
}
