package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/notes"
	"github.com/handydesk/handydesk/internal/sales/customers"
	"github.com/handydesk/handydesk/internal/sales/requests"
	salesshared "github.com/handydesk/handydesk/internal/sales/shared"
	"github.com/handydesk/handydesk/internal/settings"
	"github.com/handydesk/handydesk/internal/shared"
	"github.com/handydesk/handydesk/report"
)

// Config holds the pricing rules applied to every quote.
type Config struct {
	TaxRate           float64
	EnforceDepositCap bool
}

func DefaultConfig() Config {
	return Config{TaxRate: salesshared.DefaultTaxRate, EnforceDepositCap: true}
}

type CustomerDirectory interface {
	Get(ctx context.Context, id string) (*customers.Customer, error)
}

type RequestSource interface {
	Get(ctx context.Context, id string) (*requests.Request, error)
}

type BusinessProfile interface {
	Business(ctx context.Context) (settings.Business, error)
}

type Service struct {
	repo      Repository
	cfg       Config
	customers CustomerDirectory
	requests  RequestSource
	syncer    *notes.Syncer
	profile   BusinessProfile
	clock     func() time.Time
	newID     func() string
	newLineID func() string
}

func NewService(repo Repository, cfg Config, customers CustomerDirectory, reqs RequestSource, syncer *notes.Syncer, profile BusinessProfile) *Service {
	return &Service{
		repo:      repo,
		cfg:       cfg,
		customers: customers,
		requests:  reqs,
		syncer:    syncer,
		profile:   profile,
		clock:     func() time.Time { return time.Now().UTC() },
		newID:     func() string { return shared.NewID(shared.PrefixQuote) },
		newLineID: func() string { return shared.NewID(shared.PrefixLineItem) },
	}
}

// Preview computes the totals of an unsaved quote with the configured tax rate.
func (s *Service) Preview(req PreviewRequest) salesshared.Totals {
	q := Quote{LineItems: s.lineItems(req.LineItems)}
	return salesshared.CalculateQuoteTotals(q.lines(), req.Discount, req.TaxEnabled, s.cfg.TaxRate, req.RequiredDeposit)
}

func (s *Service) lineItems(in []LineItemInput) []LineItem {
	out := make([]LineItem, 0, len(in))
	for _, li := range in {
		id := strings.TrimSpace(li.ID)
		if id == "" {
			id = s.newLineID()
		}
		out = append(out, LineItem{
			ID:          id,
			Name:        strings.TrimSpace(li.Name),
			Description: strings.TrimSpace(li.Description),
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}
	return out
}

func (s *Service) recalculate(q *Quote) error {
	totals := salesshared.CalculateQuoteTotals(q.lines(), q.Discount, q.TaxEnabled, s.cfg.TaxRate, q.RequiredDeposit)
	if s.cfg.EnforceDepositCap && totals.Deposit > totals.Total {
		return fmt.Errorf("%w: required deposit %s exceeds total %s", shared.ErrValidation,
			shared.FormatMoney(totals.Deposit), shared.FormatMoney(salesshared.Round2(totals.Total)))
	}
	q.applyTotals(totals)
	return nil
}

// Create stores a draft or sent quote. When request_id is given, the request supplies the
// customer, the title and the client message wherever those are left empty.
func (s *Service) Create(ctx context.Context, req CreateQuoteRequest) (*Quote, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.ClientMessage)
	if req.RequestID != "" {
		source, err := s.requests.Get(ctx, req.RequestID)
		if err != nil {
			return nil, fmt.Errorf("prefill quote from request: %w", err)
		}
		if customerID == "" {
			customerID = source.ClientID
		}
		if title == "" {
			title = source.Title
		}
		if message == "" {
			message = source.Details
		}
	}
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer_id is required", shared.ErrValidation)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", shared.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	if status != StatusDraft && status != StatusSent {
		return nil, fmt.Errorf("%w: a new quote must be draft or sent", shared.ErrValidation)
	}
	taxEnabled := true
	if req.TaxEnabled != nil {
		taxEnabled = *req.TaxEnabled
	}

	now := s.clock()
	q := Quote{
		ID:              s.newID(),
		CustomerID:      customerID,
		RequestID:       strings.TrimSpace(req.RequestID),
		Title:           title,
		Status:          status,
		LineItems:       s.lineItems(req.LineItems),
		TaxEnabled:      taxEnabled,
		Discount:        req.Discount,
		RequiredDeposit: req.RequiredDeposit,
		ClientMessage:   message,
		Disclaimer:      strings.TrimSpace(req.Disclaimer),
		InternalNotes:   strings.TrimSpace(req.InternalNotes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.recalculate(&q); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	if _, err := s.syncer.SyncToCustomer(ctx, customerID, q.InternalNotes, notes.ImportanceMedium); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return &q, nil
}

// Update patches a quote. Totals are recomputed from the stored line items after every
// patch, so they always match the current pricing inputs.
func (s *Service) Update(ctx context.Context, id string, req UpdateQuoteRequest) (*Quote, error) {
	notesChanged := false
	updated, err := s.repo.Update(ctx, id, func(q *Quote) error {
		if req.Status != nil {
			if !CanTransition(q.Status, *req.Status) {
				return fmt.Errorf("%w: %s -> %s", shared.ErrInvalidTransition, q.Status, *req.Status)
			}
			q.Status = *req.Status
		}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return fmt.Errorf("%w: title cannot be blank", shared.ErrValidation)
			}
			q.Title = title
		}
		if req.LineItems != nil {
			q.LineItems = s.lineItems(*req.LineItems)
		}
		if req.Discount != nil {
			q.Discount = *req.Discount
		}
		if req.TaxEnabled != nil {
			q.TaxEnabled = *req.TaxEnabled
		}
		if req.RequiredDeposit != nil {
			q.RequiredDeposit = *req.RequiredDeposit
		}
		if req.ClientMessage != nil {
			q.ClientMessage = strings.TrimSpace(*req.ClientMessage)
		}
		if req.Disclaimer != nil {
			q.Disclaimer = strings.TrimSpace(*req.Disclaimer)
		}
		if req.InternalNotes != nil {
			next := strings.TrimSpace(*req.InternalNotes)
			notesChanged = next != q.InternalNotes
			q.InternalNotes = next
		}
		if err := s.recalculate(q); err != nil {
			return err
		}
		q.UpdatedAt = s.touch(q.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	if notesChanged {
		if _, err := s.syncer.SyncToCustomer(ctx, updated.CustomerID, updated.InternalNotes, notes.ImportanceMedium); err != nil {
			return nil, fmt.Errorf("update quote: %w", err)
		}
	}
	return updated, nil
}

func (s *Service) touch(createdAt time.Time) time.Time {
	now := s.clock()
	if now.Before(createdAt) {
		return createdAt
	}
	return now
}

func (s *Service) Get(ctx context.Context, id string) (*Quote, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListQuotesRequest) ([]Quote, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Quote, 0, len(all))
	for _, q := range all {
		if req.Status != nil && q.Status != *req.Status {
			continue
		}
		if req.CustomerID != "" && q.CustomerID != req.CustomerID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

// Document assembles the printable form of a quote.
func (s *Service) Document(ctx context.Context, id string) (report.QuoteDocument, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return report.QuoteDocument{}, err
	}

	customer := report.Party{Name: q.CustomerID}
	c, err := s.customers.Get(ctx, q.CustomerID)
	switch {
	case err == nil:
		customer = report.Party{Name: c.Name, Phone: c.Phone, Email: c.Email}
		if c.Address != "" {
			customer.Address = []string{c.Address}
		}
	case !errors.Is(err, shared.ErrNotFound):
		return report.QuoteDocument{}, fmt.Errorf("quote document customer: %w", err)
	}

	var business report.Party
	if s.profile != nil {
		b, err := s.profile.Business(ctx)
		if err != nil {
			return report.QuoteDocument{}, fmt.Errorf("quote document business: %w", err)
		}
		business = businessParty(b)
	}

	doc := report.QuoteDocument{
		Number:        q.ID,
		Title:         q.Title,
		Status:        string(q.Status),
		Date:          q.UpdatedAt,
		Business:      business,
		Customer:      customer,
		Subtotal:      q.Subtotal,
		Discount:      q.Discount,
		TaxEnabled:    q.TaxEnabled,
		TaxPercent:    q.Tax,
		TaxAmount:     q.TaxAmount,
		Total:         q.Total,
		Deposit:       q.RequiredDeposit,
		ClientMessage: q.ClientMessage,
		Disclaimer:    q.Disclaimer,
	}
	for _, li := range q.LineItems {
		doc.Lines = append(doc.Lines, report.QuoteLine{
			Name:        li.Name,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount(),
		})
	}
	return doc, nil
}

func businessParty(b settings.Business) report.Party {
	p := report.Party{Name: b.Name, Phone: b.Phone, Email: b.Email}
	if b.Address != "" {
		p.Address = append(p.Address, b.Address)
	}
	locality := strings.TrimSpace(b.State + " " + b.Zip)
	if b.City != "" && locality != "" {
		locality = b.City + ", " + locality
	} else if b.City != "" {
		locality = b.City
	}
	if locality != "" {
		p.Address = append(p.Address, locality)
	}
	return p
}
