package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/notes"
	"github.com/handydesk/handydesk/internal/shared"
)

type Service struct {
	repo   Repository
	ledger notes.Ledger
	clock  func() time.Time
	newID  func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		clock: func() time.Time { return time.Now().UTC() },
		newID: func() string { return shared.NewID(shared.PrefixCustomer) },
	}
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	name := displayName(req)
	if name == "" {
		return nil, fmt.Errorf("%w: first name, last name or company name is required", shared.ErrValidation)
	}

	billing, err := billingFromRequest(req)
	if err != nil {
		return nil, err
	}

	address := strings.TrimSpace(req.Address)
	if req.Property != nil {
		address = req.Property.Flatten()
	}

	now := s.clock()
	customer := Customer{
		ID:                     s.newID(),
		Name:                   name,
		Title:                  strings.TrimSpace(req.Title),
		FirstName:              shared.Capitalize(req.FirstName),
		LastName:               shared.Capitalize(req.LastName),
		CompanyName:            strings.TrimSpace(req.CompanyName),
		UseCompanyName:         req.UseCompanyName,
		Emails:                 req.Emails,
		Phones:                 req.Phones,
		Address:                address,
		Property:               req.Property,
		Billing:                billing,
		Notes:                  notes.Encode(nil),
		Status:                 req.Status,
		LeadSource:             strings.TrimSpace(req.LeadSource),
		AutomatedNotifications: req.AutomatedNotifications,
		CreatedAt:              now,
		UpdatedAt:              now,
		LastContactDate:        &now,
	}
	if customer.Status == "" {
		customer.Status = StatusActive
	}
	if len(req.Emails) > 0 {
		customer.Email = strings.TrimSpace(req.Emails[0].Address)
	}
	if len(req.Phones) > 0 {
		customer.Phone = strings.TrimSpace(req.Phones[0].Number)
	}
	if note, ok := s.ledger.Format(req.Notes, notes.ImportanceMedium); ok {
		customer.Notes = notes.Encode([]notes.Note{note})
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &customer, nil
}

func displayName(req CreateCustomerRequest) string {
	if req.UseCompanyName && strings.TrimSpace(req.CompanyName) != "" {
		return strings.TrimSpace(req.CompanyName)
	}
	full := strings.TrimSpace(shared.Capitalize(req.FirstName) + " " + shared.Capitalize(req.LastName))
	if full != "" {
		return full
	}
	if strings.TrimSpace(req.CompanyName) != "" {
		return strings.TrimSpace(req.CompanyName)
	}
	return strings.TrimSpace(req.Name)
}

func billingFromRequest(req CreateCustomerRequest) (Billing, error) {
	same := req.BillingAddressSameAsProperty == nil || *req.BillingAddressSameAsProperty
	if same {
		return SameAsProperty(), nil
	}
	if req.BillingAddress == nil {
		return Billing{}, fmt.Errorf("%w: billing_address is required when it differs from the property", shared.ErrValidation)
	}
	return Distinct(*req.BillingAddress), nil
}

func validateBilling(b Billing) error {
	switch b.Kind {
	case BillingSameAsProperty:
		if b.Address != nil {
			return fmt.Errorf("%w: billing address must be empty when same as property", shared.ErrValidation)
		}
	case BillingDistinct:
		if b.Address == nil {
			return fmt.Errorf("%w: distinct billing requires an address", shared.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown billing kind %q", shared.ErrValidation, b.Kind)
	}
	return nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error) {
	if req.Billing != nil {
		if err := validateBilling(*req.Billing); err != nil {
			return nil, err
		}
	}
	updated, err := s.repo.Update(ctx, id, func(c *Customer) error {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: name cannot be blank", shared.ErrValidation)
			}
			c.Name = name
		}
		if req.Email != nil {
			c.Email = strings.TrimSpace(*req.Email)
		}
		if req.Phone != nil {
			c.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Property != nil {
			p := *req.Property
			c.Property = &p
			c.Address = p.Flatten()
		}
		if req.Address != nil {
			c.Address = strings.TrimSpace(*req.Address)
		}
		if req.Billing != nil {
			c.Billing = *req.Billing
		}
		if req.Status != nil {
			c.Status = *req.Status
		}
		if req.LeadSource != nil {
			c.LeadSource = strings.TrimSpace(*req.LeadSource)
		}
		if req.AutomatedNotifications != nil {
			c.AutomatedNotifications = *req.AutomatedNotifications
		}
		c.UpdatedAt = s.touch(c.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return updated, nil
}

// touch returns the current time, never earlier than createdAt.
func (s *Service) touch(createdAt time.Time) time.Time {
	now := s.clock()
	if now.Before(createdAt) {
		return createdAt
	}
	return now
}

func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(req.Search))
	out := make([]Customer, 0, len(all))
	for _, c := range all {
		if req.Status != nil && c.Status != *req.Status {
			continue
		}
		if search != "" && !matches(c, search) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func matches(c Customer, needle string) bool {
	for _, field := range []string{c.Name, c.Email, c.Phone, c.Address, c.CompanyName} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// AddNote appends a note directly to the customer's ledger.
func (s *Service) AddNote(ctx context.Context, id, content string, importance notes.Importance) (*notes.Note, error) {
	note, ok := s.ledger.Format(content, importance)
	if !ok {
		return nil, fmt.Errorf("%w: note content is empty", shared.ErrValidation)
	}
	_, err := s.repo.Update(ctx, id, func(c *Customer) error {
		c.Notes = notes.Append(c.Notes, note)
		c.UpdatedAt = s.touch(c.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add customer note: %w", err)
	}
	return &note, nil
}

// Notes returns the parsed ledger of the customer.
func (s *Service) Notes(ctx context.Context, id string) ([]notes.Note, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return notes.Parse(c.Notes), nil
}

// RecordContact stamps the customer's last contact date with the current time.
func (s *Service) RecordContact(ctx context.Context, id string) (*Customer, error) {
	return s.repo.Update(ctx, id, func(c *Customer) error {
		now := s.touch(c.CreatedAt)
		c.LastContactDate = &now
		c.UpdatedAt = now
		return nil
	})
}

// UpdateCustomerNotes implements notes.CustomerNotes.
func (s *Service) UpdateCustomerNotes(ctx context.Context, customerID string, fn func(raw string) string) (bool, error) {
	_, err := s.repo.Update(ctx, customerID, func(c *Customer) error {
		c.Notes = fn(c.Notes)
		c.UpdatedAt = s.touch(c.CreatedAt)
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
