package requests

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/handydesk/handydesk/internal/notes"
	"github.com/handydesk/handydesk/internal/platform/httpx"
	"github.com/handydesk/handydesk/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ListRequestsRequest{ClientID: q.Get("client_id")}
	if v := q.Get("status"); v != "" {
		status := Status(v)
		req.Status = &status
	}
	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list requests failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.Paginate(list, shared.PaginationFromQuery(q, len(list))))
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	request, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, request)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequestRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	request, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("create request failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("request created", slog.String("request_id", request.ID), slog.String("client_id", request.ClientID))
	httpx.JSON(w, http.StatusCreated, request)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequestRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	request, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, request)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Notes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req AddNoteRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	importance, err := notes.ParseImportance(req.Importance)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	note, err := h.service.AddNote(r.Context(), id, req.Content, importance)
	if err != nil {
		h.logger.Error("add request note failed", slog.String("request_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if note == nil {
		h.logger.Info("request note skipped, client not found", slog.String("request_id", id))
		httpx.JSON(w, http.StatusOK, map[string]any{"note": nil, "synced": false})
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"note": note, "synced": true})
}
