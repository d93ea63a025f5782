package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/sales/customers"
	"github.com/handydesk/handydesk/internal/schedule"
	"github.com/handydesk/handydesk/internal/shared"
)

// CustomerDirectory is the part of the customer service jobs depend on.
type CustomerDirectory interface {
	Get(ctx context.Context, id string) (*customers.Customer, error)
	Create(ctx context.Context, req customers.CreateCustomerRequest) (*customers.Customer, error)
}

type Service struct {
	repo      Repository
	customers CustomerDirectory
	clock     func() time.Time
	newID     func() string
}

func NewService(repo Repository, customers CustomerDirectory) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		clock:     func() time.Time { return time.Now().UTC() },
		newID:     func() string { return shared.NewID(shared.PrefixJob) },
	}
}

func (s *Service) Create(ctx context.Context, req CreateJobRequest) (*Job, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	var customer *customers.Customer
	if req.NewCustomer != nil {
		created, err := s.customers.Create(ctx, *req.NewCustomer)
		if err != nil {
			return nil, fmt.Errorf("create job customer: %w", err)
		}
		customer = created
		customerID = created.ID
	} else {
		found, err := s.customers.Get(ctx, customerID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("lookup job customer: %w", err)
		}
		customer = found
	}
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer_id is required", shared.ErrValidation)
	}

	status := StatusLead
	if req.Status != nil {
		status = *req.Status
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	location := strings.TrimSpace(req.Location)
	if location == "" && customer != nil {
		location = customer.Address
	}

	now := s.clock()
	job := Job{
		ID:             s.newID(),
		CustomerID:     customerID,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Status:         status,
		ScheduledDate:  req.ScheduledDate,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		EstimatedHours: req.EstimatedHours,
		Priority:       priority,
		LeadSource:     strings.TrimSpace(req.LeadSource),
		Location:       location,
		Price:          req.Price,
		Notes:          strings.TrimSpace(req.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := recomputeWorkingDays(&job); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return &job, nil
}

// recomputeWorkingDays refreshes the cached working-day count from the job dates. A job
// without both dates counts zero working days.
func recomputeWorkingDays(j *Job) error {
	if j.StartDate == "" || j.EndDate == "" {
		j.WorkingDays = 0
		return nil
	}
	n, err := schedule.WorkingDaysBetween(j.StartDate, j.EndDate)
	if err != nil {
		return err
	}
	j.WorkingDays = n
	return nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateJobRequest) (*Job, error) {
	updated, err := s.repo.Update(ctx, id, func(j *Job) error {
		if req.Status != nil {
			if !CanTransition(j.Status, *req.Status) {
				return fmt.Errorf("%w: %q -> %q", shared.ErrInvalidTransition, j.Status, *req.Status)
			}
			j.Status = *req.Status
		}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return fmt.Errorf("%w: title cannot be blank", shared.ErrValidation)
			}
			j.Title = title
		}
		if req.Description != nil {
			j.Description = strings.TrimSpace(*req.Description)
		}
		if req.CustomerID != nil {
			j.CustomerID = strings.TrimSpace(*req.CustomerID)
		}
		if req.ScheduledDate != nil {
			j.ScheduledDate = *req.ScheduledDate
		}
		datesChanged := false
		if req.StartDate != nil {
			j.StartDate = *req.StartDate
			datesChanged = true
		}
		if req.EndDate != nil {
			j.EndDate = *req.EndDate
			datesChanged = true
		}
		if datesChanged {
			if err := recomputeWorkingDays(j); err != nil {
				return err
			}
		}
		if req.EstimatedHours != nil {
			j.EstimatedHours = *req.EstimatedHours
		}
		if req.Priority != nil {
			j.Priority = *req.Priority
		}
		if req.LeadSource != nil {
			j.LeadSource = strings.TrimSpace(*req.LeadSource)
		}
		if req.Location != nil {
			j.Location = strings.TrimSpace(*req.Location)
		}
		if req.Price != nil {
			j.Price = *req.Price
		}
		if req.Notes != nil {
			j.Notes = strings.TrimSpace(*req.Notes)
		}
		j.UpdatedAt = s.touch(j.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
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

func (s *Service) Get(ctx context.Context, id string) (*Job, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListJobsRequest) ([]Job, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Job, 0, len(all))
	for _, j := range all {
		if req.Status != nil && j.Status != *req.Status {
			continue
		}
		if req.CustomerID != "" && j.CustomerID != req.CustomerID {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// RecordContact stamps the job's last contact date.
func (s *Service) RecordContact(ctx context.Context, id string) (*Job, error) {
	return s.repo.Update(ctx, id, func(j *Job) error {
		now := s.touch(j.CreatedAt)
		j.LastContactDate = &now
		j.UpdatedAt = now
		return nil
	})
}

// SetProposalDue sets or clears the externally managed proposal_due attention tag.
func (s *Service) SetProposalDue(ctx context.Context, id string, due bool) (*Job, error) {
	return s.repo.Update(ctx, id, func(j *Job) error {
		if due {
			j.RequiresAttention = &Attention{Type: AttentionProposalDue}
		} else if j.RequiresAttention != nil && j.RequiresAttention.Type == AttentionProposalDue {
			j.RequiresAttention = nil
		}
		j.UpdatedAt = s.touch(j.CreatedAt)
		return nil
	})
}
