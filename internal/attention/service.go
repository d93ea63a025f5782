package attention

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/handydesk/handydesk/internal/sales/customers"
	"github.com/handydesk/handydesk/internal/sales/jobs"
	"github.com/handydesk/handydesk/internal/sales/quotes"
)

type JobSource interface {
	List(ctx context.Context, req jobs.ListJobsRequest) ([]jobs.Job, error)
}

type CustomerSource interface {
	List(ctx context.Context, req customers.ListCustomersRequest) ([]customers.Customer, error)
}

type QuoteSource interface {
	List(ctx context.Context, req quotes.ListQuotesRequest) ([]quotes.Quote, error)
}

// Dashboard bundles every attention list computed from one snapshot.
type Dashboard struct {
	GeneratedAt   time.Time            `json:"generated_at"`
	Jobs          []JobAttention       `json:"jobs"`
	Leads         []Lead               `json:"leads"`
	ContactNeeded []ContactNeededEntry `json:"contact_needed"`
	Drafts        []StaleDraft         `json:"drafts"`
}

// FlaggedCount is the number of entries across all lists.
func (d Dashboard) FlaggedCount() int {
	return len(d.Jobs) + len(d.Leads) + len(d.ContactNeeded) + len(d.Drafts)
}

type Service struct {
	jobs       JobSource
	customers  CustomerSource
	quotes     QuoteSource
	rules      Rules
	staleAfter time.Duration
	clock      func() time.Time

	flight singleflight.Group
}

func NewService(j JobSource, c CustomerSource, q QuoteSource, rules Rules, staleAfter time.Duration) *Service {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Service{
		jobs:       j,
		customers:  c,
		quotes:     q,
		rules:      rules,
		staleAfter: staleAfter,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

type snapshot struct {
	jobs      []jobs.Job
	customers []customers.Customer
	quotes    []quotes.Quote
}

func (s *Service) snapshot(ctx context.Context, needJobs, needCustomers, needQuotes bool) (snapshot, error) {
	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)
	if needJobs {
		g.Go(func() error {
			list, err := s.jobs.List(ctx, jobs.ListJobsRequest{})
			snap.jobs = list
			return err
		})
	}
	if needCustomers {
		g.Go(func() error {
			list, err := s.customers.List(ctx, customers.ListCustomersRequest{})
			snap.customers = list
			return err
		})
	}
	if needQuotes {
		g.Go(func() error {
			list, err := s.quotes.List(ctx, quotes.ListQuotesRequest{})
			snap.quotes = list
			return err
		})
	}
	return snap, g.Wait()
}

func (s *Service) JobFlags(ctx context.Context) ([]JobAttention, error) {
	snap, err := s.snapshot(ctx, true, true, false)
	if err != nil {
		return nil, err
	}
	return JobFlags(snap.jobs, snap.customers, s.clock(), s.rules), nil
}

func (s *Service) Leads(ctx context.Context) ([]Lead, error) {
	snap, err := s.snapshot(ctx, true, true, false)
	if err != nil {
		return nil, err
	}
	return Leads(snap.jobs, snap.customers, s.clock()), nil
}

func (s *Service) ContactNeeded(ctx context.Context) ([]ContactNeededEntry, error) {
	snap, err := s.snapshot(ctx, true, true, false)
	if err != nil {
		return nil, err
	}
	return ContactNeeded(snap.customers, snap.jobs, s.clock(), s.rules), nil
}

func (s *Service) StaleDrafts(ctx context.Context) ([]StaleDraft, error) {
	snap, err := s.snapshot(ctx, false, false, true)
	if err != nil {
		return nil, err
	}
	return StaleDrafts(snap.quotes, s.clock(), s.staleAfter), nil
}

// Dashboard computes all lists from one snapshot. Concurrent callers share a single
// computation.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	v, err, _ := s.flight.Do("dashboard", func() (any, error) {
		return s.dashboard(ctx)
	})
	if err != nil {
		return Dashboard{}, err
	}
	return v.(Dashboard), nil
}

func (s *Service) dashboard(ctx context.Context) (Dashboard, error) {
	snap, err := s.snapshot(ctx, true, true, true)
	if err != nil {
		return Dashboard{}, err
	}
	now := s.clock()
	d := Dashboard{GeneratedAt: now}
	var g errgroup.Group
	g.Go(func() error {
		d.Jobs = JobFlags(snap.jobs, snap.customers, now, s.rules)
		return nil
	})
	g.Go(func() error {
		d.Leads = Leads(snap.jobs, snap.customers, now)
		return nil
	})
	g.Go(func() error {
		d.ContactNeeded = ContactNeeded(snap.customers, snap.jobs, now, s.rules)
		return nil
	})
	g.Go(func() error {
		d.Drafts = StaleDrafts(snap.quotes, now, s.staleAfter)
		return nil
	})
	return d, g.Wait()
}
