package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/handydesk/handydesk/internal/assistant"
	"github.com/handydesk/handydesk/internal/attention"
	"github.com/handydesk/handydesk/internal/notes"
	"github.com/handydesk/handydesk/internal/notifications"
	"github.com/handydesk/handydesk/internal/observability"
	"github.com/handydesk/handydesk/internal/platform/collection"
	"github.com/handydesk/handydesk/internal/platform/kv"
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

type loader interface {
	Load(ctx context.Context) error
}

// Container holds every repository and service of one process.
type Container struct {
	Config  *Config
	Logger  *slog.Logger
	Store   kv.Store
	Metrics *observability.Metrics

	customerRepo customers.Repository
	jobRepo      jobs.Repository
	quoteRepo    quotes.Repository
	requestRepo  requests.Repository
	lineItemRepo lineitems.Repository
	invoiceRepo  invoices.Repository

	Customers     *customers.Service
	Jobs          *jobs.Service
	Quotes        *quotes.Service
	Requests      *requests.Service
	LineItems     *lineitems.Service
	Invoices      *invoices.Service
	Notifications *notifications.Service
	Settings      *settings.Service
	Attention     *attention.Service
	Assistant     *assistant.Service
	DraftMonitor  *notifications.DraftMonitor
	PDF           *report.Client
}

// NewContainer wires services over store and loads every snapshot.
func NewContainer(ctx context.Context, cfg *Config, logger *slog.Logger, store kv.Store, metrics *observability.Metrics) (*Container, error) {
	sealer, err := settings.NewSealer(cfg.SettingsSecret)
	if err != nil {
		return nil, fmt.Errorf("settings sealer: %w", err)
	}
	c := &Container{
		Config:       cfg,
		Logger:       logger,
		Store:        store,
		Metrics:      metrics,
		customerRepo: customers.NewRepository(store),
		jobRepo:      jobs.NewRepository(store),
		quoteRepo:    quotes.NewRepository(store),
		requestRepo:  requests.NewRepository(store),
		lineItemRepo: lineitems.NewRepository(store),
		invoiceRepo:  invoices.NewRepository(store),
		PDF:          report.NewClient(cfg.GotenbergURL),
	}
	c.Notifications = notifications.NewService(store)
	c.Settings = settings.NewService(store, sealer)
	c.Customers = customers.NewService(c.customerRepo)
	syncer := notes.NewSyncer(c.Customers, notes.Ledger{})
	c.Jobs = jobs.NewService(c.jobRepo, c.Customers)
	c.Requests = requests.NewService(c.requestRepo, syncer)
	c.Quotes = quotes.NewService(c.quoteRepo, cfg.QuoteConfig(), c.Customers, c.Requests, syncer, c.Settings)
	c.LineItems = lineitems.NewService(c.lineItemRepo)
	c.Invoices = invoices.NewService(c.invoiceRepo, c.Jobs)
	c.Attention = attention.NewService(c.Jobs, c.Customers, c.Quotes, cfg.AttentionRules(), cfg.DraftStaleAfter)
	c.Assistant = assistant.NewService(cfg.AssistantConfig(), c.Settings, logger)
	c.DraftMonitor = notifications.NewDraftMonitor(c.Quotes, c.Notifications, cfg.DraftStaleAfter, logger)

	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads every snapshot from the store. A corrupt snapshot is logged and
// its collection starts empty.
func (c *Container) Reload(ctx context.Context) error {
	stores := []struct {
		name string
		l    loader
	}{
		{customers.StoreName, c.customerRepo},
		{jobs.StoreName, c.jobRepo},
		{quotes.StoreName, c.quoteRepo},
		{requests.StoreName, c.requestRepo},
		{lineitems.StoreName, c.lineItemRepo},
		{invoices.StoreName, c.invoiceRepo},
		{notifications.StoreName, c.Notifications},
	}
	for _, s := range stores {
		err := s.l.Load(ctx)
		if errors.Is(err, collection.ErrCorruptSnapshot) {
			c.Logger.Error("corrupt snapshot discarded", slog.String("store", s.name), slog.Any("error", err))
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", s.name, err)
		}
	}
	return nil
}

// RouterParams assembles the API handlers. queueClient and inspector may be nil.
func (c *Container) RouterParams(queueClient *queue.Client, inspector *asynq.Inspector) RouterParams {
	notificationsHandler := notifications.NewHandler(c.Logger, c.Notifications)
	if c.Config.DraftMonitor == DraftMonitorWorker {
		notificationsHandler.ReloadOnList()
	}
	return RouterParams{
		Logger:               c.Logger,
		Config:               c.Config,
		Metrics:              c.Metrics,
		CustomersHandler:     customers.NewHandler(c.Logger, c.Customers),
		JobsHandler:          jobs.NewHandler(c.Logger, c.Jobs),
		QuotesHandler:        quotes.NewHandler(c.Logger, c.Quotes, c.PDF),
		RequestsHandler:      requests.NewHandler(c.Logger, c.Requests),
		LineItemsHandler:     lineitems.NewHandler(c.Logger, c.LineItems),
		InvoicesHandler:      invoices.NewHandler(c.Logger, c.Invoices),
		AttentionHandler:     attention.NewHandler(c.Logger, c.Attention),
		NotificationsHandler: notificationsHandler,
		SettingsHandler:      settings.NewHandler(c.Logger, c.Settings),
		AssistantHandler:     assistant.NewHandler(c.Logger, c.Assistant),
		ReportHandler:        report.NewHandler(c.PDF, c.Logger),
		QueueHandler:         queue.NewHandler(inspector, queueClient, c.Logger),
	}
}
