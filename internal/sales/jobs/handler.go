package jobs

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/handydesk/handydesk/internal/platform/httpx"
	"github.com/handydesk/handydesk/internal/schedule"
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
	req := ListJobsRequest{CustomerID: q.Get("customer_id")}
	if v := q.Get("status"); v != "" {
		status, err := ParseStatus(v)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		req.Status = &status
	}
	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list jobs failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.Paginate(list, shared.PaginationFromQuery(q, len(list))))
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	job, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Warn("create job failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("job created", slog.String("job_id", job.ID), slog.String("customer_id", job.CustomerID))
	httpx.JSON(w, http.StatusCreated, job)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateJobRequest
	if err := httpx.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	job, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) RecordContact(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.RecordContact(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

func (h *Handler) FlagProposalDue(w http.ResponseWriter, r *http.Request) {
	due := r.Method != http.MethodDelete
	job, err := h.service.SetProposalDue(r.Context(), chi.URLParam(r, "id"), due)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}

func (h *Handler) WorkingDays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := schedule.WorkingDaysBetween(q.Get("start"), q.Get("end"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"start":        q.Get("start"),
		"end":          q.Get("end"),
		"working_days": n,
	})
}

func (h *Handler) Statuses(w http.ResponseWriter, r *http.Request) {
	type stage struct {
		Status Status   `json:"status"`
		Next   []Status `json:"next"`
	}
	out := make([]stage, 0, len(Statuses))
	for _, st := range Statuses {
		out = append(out, stage{Status: st, Next: st.Next()})
	}
	httpx.JSON(w, http.StatusOK, out)
}
