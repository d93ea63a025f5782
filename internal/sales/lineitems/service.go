package lineitems

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/shared"
)

const suggestLimit = 10

type Service struct {
	repo  Repository
	clock func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		clock: func() time.Time { return time.Now().UTC() },
		newID: func() string { return shared.NewID(shared.PrefixLineItem) },
	}
}

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*SavedLineItem, error) {
	qty := 1.0
	if req.DefaultQuantity != nil {
		qty = *req.DefaultQuantity
	}
	now := s.clock()
	item := SavedLineItem{
		ID:              s.newID(),
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		DefaultQuantity: qty,
		DefaultPrice:    req.DefaultPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create line item: %w", err)
	}
	return &item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateItemRequest) (*SavedLineItem, error) {
	updated, err := s.repo.Update(ctx, id, func(i *SavedLineItem) error {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: name cannot be blank", shared.ErrValidation)
			}
			i.Name = name
		}
		if req.Description != nil {
			i.Description = strings.TrimSpace(*req.Description)
		}
		if req.DefaultQuantity != nil {
			i.DefaultQuantity = *req.DefaultQuantity
		}
		if req.DefaultPrice != nil {
			i.DefaultPrice = *req.DefaultPrice
		}
		i.UpdatedAt = s.clock()
		if i.UpdatedAt.Before(i.CreatedAt) {
			i.UpdatedAt = i.CreatedAt
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update line item: %w", err)
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id string) (*SavedLineItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]SavedLineItem, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete line item: %w", err)
	}
	return nil
}

func (s *Service) Suggest(ctx context.Context, query string) ([]SavedLineItem, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Suggest(all, query, suggestLimit), nil
}
