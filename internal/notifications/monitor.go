package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/attention"
	"github.com/handydesk/handydesk/internal/sales/quotes"
)

const draftPrefix = "draft-"

// DefaultCheckInterval is how often the in-process monitor looks for stale drafts.
const DefaultCheckInterval = time.Minute

type QuoteSource interface {
	List(ctx context.Context, req quotes.ListQuotesRequest) ([]quotes.Quote, error)
}

// DraftMonitor raises a warning for every draft quote older than the stale threshold and
// withdraws it once the quote is sent or deleted.
type DraftMonitor struct {
	quotes        QuoteSource
	notifications *Service
	staleAfter    time.Duration
	apiPrefix     string
	logger        *slog.Logger
	clock         func() time.Time
}

func NewDraftMonitor(q QuoteSource, n *Service, staleAfter time.Duration, logger *slog.Logger) *DraftMonitor {
	if staleAfter <= 0 {
		staleAfter = attention.DefaultStaleAfter
	}
	return &DraftMonitor{
		quotes:        q,
		notifications: n,
		staleAfter:    staleAfter,
		apiPrefix:     "/api/v1",
		logger:        logger,
		clock:         func() time.Time { return time.Now().UTC() },
	}
}

// DraftNotification is the warning raised for one stale draft.
func DraftNotification(q quotes.Quote, apiPrefix string) Notification {
	href := apiPrefix + "/quotes/" + q.ID
	return Notification{
		ID:      draftPrefix + q.ID,
		Title:   "Draft Quote Requires Attention",
		Message: fmt.Sprintf("Draft quote %q is over 24 hours old", q.Title),
		Type:    TypeWarning,
		Actions: []Action{
			{Label: "Delete Draft", Method: http.MethodDelete, Href: href},
			{Label: "Edit Quote", Method: http.MethodGet, Href: href},
		},
	}
}

// Check reconciles draft notifications with the current quotes and reports how many
// drafts are stale.
func (m *DraftMonitor) Check(ctx context.Context) (int, error) {
	list, err := m.quotes.List(ctx, quotes.ListQuotesRequest{})
	if err != nil {
		return 0, fmt.Errorf("draft monitor: list quotes: %w", err)
	}
	stale := attention.StaleDrafts(list, m.clock(), m.staleAfter)
	keep := make(map[string]bool, len(stale))
	for _, d := range stale {
		n := DraftNotification(d.Quote, m.apiPrefix)
		keep[n.ID] = true
		if err := m.notifications.Upsert(ctx, n); err != nil {
			return 0, fmt.Errorf("draft monitor: upsert %s: %w", n.ID, err)
		}
	}
	for _, id := range m.notifications.WithPrefix(draftPrefix) {
		if keep[id] {
			continue
		}
		if err := m.notifications.Remove(ctx, id); err != nil {
			return 0, fmt.Errorf("draft monitor: remove %s: %w", id, err)
		}
		m.logger.Debug("draft notification withdrawn", slog.String("quote_id", strings.TrimPrefix(id, draftPrefix)))
	}
	return len(stale), nil
}

// Run checks immediately and then on every tick until ctx is cancelled.
func (m *DraftMonitor) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if n, err := m.Check(ctx); err != nil {
			m.logger.Error("draft check failed", slog.Any("error", err))
		} else if n > 0 {
			m.logger.Info("stale draft quotes", slog.Int("count", n))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
