package customers

import (
	"context"
	"fmt"

	"github.com/handydesk/handydesk/internal/platform/collection"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/shared"
)

var ErrNotFound = fmt.Errorf("customer %w", shared.ErrNotFound)

type Repository interface {
	Load(ctx context.Context) error
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, customer Customer) error
	Update(ctx context.Context, id string, fn func(*Customer) error) (*Customer, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	items *collection.Collection[Customer]
}

// NewRepository returns a Repository persisted on store under StoreName.
func NewRepository(store kv.Store) Repository {
	return &repository{
		items: collection.New(StoreName, store, func(c Customer) string { return c.ID }),
	}
}

func (r *repository) Load(ctx context.Context) error {
	return r.items.Load(ctx)
}

func (r *repository) Get(_ context.Context, id string) (*Customer, error) {
	c, ok := r.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *repository) List(_ context.Context) ([]Customer, error) {
	return r.items.List(), nil
}

func (r *repository) Create(ctx context.Context, customer Customer) error {
	return r.items.Add(ctx, customer)
}

func (r *repository) Update(ctx context.Context, id string, fn func(*Customer) error) (*Customer, error) {
	c, ok, err := r.items.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
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
