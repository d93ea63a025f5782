package quotes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/handydesk/handydesk/internal/platform/httpx"
	"github.com/handydesk/handydesk/internal/shared"
	"github.com/handydesk/handydesk/report"
)

// PDFRenderer converts an HTML document to PDF.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

type Handler struct {
	logger  *slog.Logger
	service *Service
	pdf     PDFRenderer
}

func NewHandler(logger *slog.Logger, service *Service, pdf PDFRenderer) *Handler {
	return &Handler{logger: logger, service: service, pdf: pdf}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ListQuotesRequest{CustomerID: q.Get("customer_id")}
	if v := q.Get("status"); v != "" {
		status := Status(v)
		req.Status = &status
	}
	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list quotes failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.Paginate(list, shared.PaginationFromQuery(q, len(list))))
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	quote, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("create quote failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("quote created", slog.String("quote_id", quote.ID), slog.String("status", string(quote.Status)), slog.Float64("total", quote.Total))
	httpx.JSON(w, http.StatusCreated, quote)
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.Preview(req))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuoteRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	quote, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) render(r *http.Request) (string, string, error) {
	id := chi.URLParam(r, "id")
	doc, err := h.service.Document(r.Context(), id)
	if err != nil {
		return "", id, err
	}
	html, err := report.RenderQuoteHTML(doc)
	return html, id, err
}

func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	html, _, err := h.render(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	html, id, err := h.render(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	pdf, err := h.pdf.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("render quote pdf", slog.String("quote_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=quote-"+id+".pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
