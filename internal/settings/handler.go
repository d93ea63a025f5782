package settings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/handydesk/handydesk/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

type apiKeyRequest struct {
	APIKey string `json:"api_key"`
}

type offlineRequest struct {
	Offline bool `json:"offline"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any, err error) {
	if err != nil {
		var keyErr *APIKeyError
		if errors.As(err, &keyErr) {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid API key", keyErr.Message)
			return
		}
		h.logger.Warn("settings request failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, status, v)
}

func (h *Handler) ShowAI(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.AI(r.Context())
	h.respond(w, http.StatusOK, st, err)
}

func (h *Handler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req apiKeyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	st, err := h.service.SetAPIKey(r.Context(), req.APIKey)
	if err == nil {
		h.logger.Info("assistant api key updated", slog.String("key_hint", st.KeyHint))
	}
	h.respond(w, http.StatusOK, st, err)
}

func (h *Handler) ClearAPIKey(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.ClearAPIKey(r.Context())
	h.respond(w, http.StatusOK, st, err)
}

func (h *Handler) SetOffline(w http.ResponseWriter, r *http.Request) {
	var req offlineRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	st, err := h.service.SetOfflineMode(r.Context(), req.Offline)
	h.respond(w, http.StatusOK, st, err)
}

func (h *Handler) ShowLogo(w http.ResponseWriter, r *http.Request) {
	logo, err := h.service.Logo(r.Context())
	h.respond(w, http.StatusOK, logo, err)
}

func (h *Handler) SetLogo(w http.ResponseWriter, r *http.Request) {
	var req Logo
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	logo, err := h.service.SetLogo(r.Context(), req)
	h.respond(w, http.StatusOK, logo, err)
}

func (h *Handler) ShowBusiness(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Business(r.Context())
	h.respond(w, http.StatusOK, b, err)
}

func (h *Handler) SetBusiness(w http.ResponseWriter, r *http.Request) {
	var req Business
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	b, err := h.service.SetBusiness(r.Context(), req)
	h.respond(w, http.StatusOK, b, err)
}

func (h *Handler) ShowNotifications(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.service.Notifications(r.Context())
	h.respond(w, http.StatusOK, prefs, err)
}

func (h *Handler) SetNotifications(w http.ResponseWriter, r *http.Request) {
	var req NotificationPrefs
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	prefs, err := h.service.SetNotifications(r.Context(), req)
	h.respond(w, http.StatusOK, prefs, err)
}
