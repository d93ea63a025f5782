package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/handydesk/handydesk/internal/assistant"
	"github.com/handydesk/handydesk/internal/attention"
	"github.com/handydesk/handydesk/internal/notifications"
	"github.com/handydesk/handydesk/internal/observability"
	"github.com/handydesk/handydesk/internal/platform/httpx"
	"github.com/handydesk/handydesk/internal/sales/customers"
	"github.com/handydesk/handydesk/internal/sales/invoices"
	"github.com/handydesk/handydesk/internal/sales/jobs"
	"github.com/handydesk/handydesk/internal/sales/lineitems"
	"github.com/handydesk/handydesk/internal/sales/quotes"
	"github.com/handydesk/handydesk/internal/sales/requests"
	"github.com/handydesk/handydesk/internal/settings"
	queue "github.com/handydesk/handydesk/jobs"
	"github.com/handydesk/handydesk/report"
)

// APIPrefix is where every resource route is mounted.
const APIPrefix = "/api/v1"

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics

	CustomersHandler     *customers.Handler
	JobsHandler          *jobs.Handler
	QuotesHandler        *quotes.Handler
	RequestsHandler      *requests.Handler
	LineItemsHandler     *lineitems.Handler
	InvoicesHandler      *invoices.Handler
	AttentionHandler     *attention.Handler
	NotificationsHandler *notifications.Handler
	SettingsHandler      *settings.Handler
	AssistantHandler     *assistant.Handler
	ReportHandler        *report.Handler
	QueueHandler         *queue.Handler
}

type mounter interface {
	MountRoutes(r chi.Router)
}

// NewRouter constructs the chi.Router with HandyDesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" is not supported for "+r.URL.Path)
	})

	r.Route(APIPrefix, func(api chi.Router) {
		for _, h := range params.handlers() {
			h.MountRoutes(api)
		}
	})

	return r
}

// handlers lists the configured resource handlers. Literal nil pointers are
// skipped so partial routers can be built in tests.
func (p RouterParams) handlers() []mounter {
	var out []mounter
	add := func(ok bool, h mounter) {
		if ok {
			out = append(out, h)
		}
	}
	add(p.CustomersHandler != nil, p.CustomersHandler)
	add(p.JobsHandler != nil, p.JobsHandler)
	add(p.QuotesHandler != nil, p.QuotesHandler)
	add(p.RequestsHandler != nil, p.RequestsHandler)
	add(p.LineItemsHandler != nil, p.LineItemsHandler)
	add(p.InvoicesHandler != nil, p.InvoicesHandler)
	add(p.AttentionHandler != nil, p.AttentionHandler)
	add(p.NotificationsHandler != nil, p.NotificationsHandler)
	add(p.SettingsHandler != nil, p.SettingsHandler)
	add(p.AssistantHandler != nil, p.AssistantHandler)
	add(p.ReportHandler != nil, p.ReportHandler)
	add(p.QueueHandler != nil, p.QueueHandler)
	return out
}
