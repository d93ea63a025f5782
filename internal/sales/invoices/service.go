package invoices

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/handydesk/handydesk/internal/sales/jobs"
	"github.com/handydesk/handydesk/internal/schedule"
	"github.com/handydesk/handydesk/internal/shared"
)

type JobSource interface {
	Get(ctx context.Context, id string) (*jobs.Job, error)
}

type Service struct {
	repo  Repository
	jobs  JobSource
	clock func() time.Time
	newID func() string

	// mu serializes creates so invoice numbers are handed out in order.
	mu sync.Mutex
}

func NewService(repo Repository, jobSource JobSource) *Service {
	return &Service{
		repo:  repo,
		jobs:  jobSource,
		clock: func() time.Time { return time.Now().UTC() },
		newID: func() string { return shared.NewID(shared.PrefixInvoice) },
	}
}

func (s *Service) today() string { return s.clock().Format(schedule.DateLayout) }

func items(in []ItemInput) []Item {
	out := make([]Item, 0, len(in))
	for _, it := range in {
		out = append(out, Item{Description: strings.TrimSpace(it.Description), Quantity: it.Quantity, Rate: it.Rate})
	}
	return out
}

// dueDate resolves the due date from an explicit value or, when empty, from the terms.
func dueDate(issued, explicit, terms string) (string, error) {
	issuedAt, err := schedule.ParseDate(issued)
	if err != nil {
		return "", err
	}
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		due, err := schedule.ParseDate(explicit)
		if err != nil {
			return "", err
		}
		if due.Before(issuedAt) {
			return "", fmt.Errorf("%w: due date %s is before issue date %s", shared.ErrValidation, explicit, issued)
		}
		return explicit, nil
	}
	days, ok := TermDays(terms)
	if !ok {
		return "", fmt.Errorf("%w: due_date is required for terms %q", shared.ErrValidation, terms)
	}
	return issuedAt.AddDate(0, 0, days).Format(schedule.DateLayout), nil
}

// Create bills a job. The customer comes from the job, and the due date defaults from the
// payment terms.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	job, err := s.jobs.Get(ctx, strings.TrimSpace(req.JobID))
	if err != nil {
		return nil, fmt.Errorf("invoice job: %w", err)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: an invoice needs at least one item", shared.ErrValidation)
	}
	terms := strings.TrimSpace(req.Terms)
	if terms == "" {
		terms = DefaultTerms
	}
	issued := strings.TrimSpace(req.IssuedDate)
	if issued == "" {
		issued = s.today()
	}
	due, err := dueDate(issued, req.DueDate, terms)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	number, err := s.nextNumber(ctx)
	if err != nil {
		return nil, err
	}
	lines := items(req.Items)
	now := s.clock()
	inv := Invoice{
		ID:         s.newID(),
		Number:     number,
		JobID:      job.ID,
		JobTitle:   job.Title,
		CustomerID: job.CustomerID,
		Items:      lines,
		Amount:     total(lines),
		Notes:      strings.TrimSpace(req.Notes),
		Terms:      terms,
		IssuedDate: issued,
		DueDate:    due,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return s.present(inv), nil
}

func (s *Service) nextNumber(ctx context.Context) (string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}
	highest := 0
	for _, inv := range all {
		if n := parseNumber(inv.Number); n > highest {
			highest = n
		}
	}
	return formatNumber(highest + 1), nil
}

// Update patches an invoice. Items of a paid invoice are locked.
func (s *Service) Update(ctx context.Context, id string, req UpdateInvoiceRequest) (*Invoice, error) {
	updated, err := s.repo.Update(ctx, id, func(inv *Invoice) error {
		if req.Status != nil {
			switch *req.Status {
			case StatusPaid:
				if inv.Status != StatusPaid {
					paidAt := s.clock()
					inv.PaidAt = &paidAt
				}
			case StatusPending:
				inv.PaidAt = nil
			default:
				return fmt.Errorf("%w: status %q cannot be set", shared.ErrValidation, *req.Status)
			}
			inv.Status = *req.Status
		}
		if req.Items != nil {
			if inv.Status == StatusPaid {
				return fmt.Errorf("%w: items of paid invoice %s are locked", shared.ErrInvalidTransition, inv.Number)
			}
			inv.Items = items(*req.Items)
			inv.Amount = total(inv.Items)
		}
		if req.Notes != nil {
			inv.Notes = strings.TrimSpace(*req.Notes)
		}
		if req.Terms != nil || req.DueDate != nil {
			if req.Terms != nil {
				terms := strings.TrimSpace(*req.Terms)
				if terms == "" {
					return fmt.Errorf("%w: terms cannot be blank", shared.ErrValidation)
				}
				inv.Terms = terms
			}
			explicit := ""
			if req.DueDate != nil {
				explicit = *req.DueDate
			}
			due, err := dueDate(inv.IssuedDate, explicit, inv.Terms)
			if err != nil {
				return err
			}
			inv.DueDate = due
		}
		inv.UpdatedAt = s.touch(inv.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return s.present(*updated), nil
}

// MarkPaid records payment of an invoice.
func (s *Service) MarkPaid(ctx context.Context, id string) (*Invoice, error) {
	paid := StatusPaid
	return s.Update(ctx, id, UpdateInvoiceRequest{Status: &paid})
}

func (s *Service) touch(createdAt time.Time) time.Time {
	now := s.clock()
	if now.Before(createdAt) {
		return createdAt
	}
	return now
}

// present fills in the derived overdue status.
func (s *Service) present(inv Invoice) *Invoice {
	inv.Status = inv.StatusOn(s.today())
	return &inv
}

func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.present(*inv), nil
}

func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Invoice, 0, len(all))
	for _, inv := range all {
		shown := *s.present(inv)
		if req.Status != nil && shown.Status != *req.Status {
			continue
		}
		if req.JobID != "" && shown.JobID != req.JobID {
			continue
		}
		if req.CustomerID != "" && shown.CustomerID != req.CustomerID {
			continue
		}
		out = append(out, shown)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
