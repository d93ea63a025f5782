package lineitems

import (
	"context"
	"fmt"

	"github.com/handydesk/handydesk/internal/platform/collection"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/shared"
)

var ErrNotFound = fmt.Errorf("line item %w", shared.ErrNotFound)

type Repository interface {
	Load(ctx context.Context) error
	Get(ctx context.Context, id string) (*SavedLineItem, error)
	List(ctx context.Context) ([]SavedLineItem, error)
	Create(ctx context.Context, item SavedLineItem) error
	Update(ctx context.Context, id string, fn func(*SavedLineItem) error) (*SavedLineItem, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	items *collection.Collection[SavedLineItem]
}

func NewRepository(store kv.Store) Repository {
	return &repository{items: collection.New(StoreName, store, func(i SavedLineItem) string { return i.ID })}
}

func (r *repository) Load(ctx context.Context) error { return r.items.Load(ctx) }

func (r *repository) Get(_ context.Context, id string) (*SavedLineItem, error) {
	item, ok := r.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *repository) List(_ context.Context) ([]SavedLineItem, error) { return r.items.List(), nil }

func (r *repository) Create(ctx context.Context, item SavedLineItem) error {
	return r.items.Add(ctx, item)
}

func (r *repository) Update(ctx context.Context, id string, fn func(*SavedLineItem) error) (*SavedLineItem, error) {
	item, ok, err := r.items.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	deleted, err := r.items.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
