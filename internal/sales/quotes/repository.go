package quotes

import (
	"context"
	"fmt"

	"github.com/handydesk/handydesk/internal/platform/collection"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/shared"
)

var ErrNotFound = fmt.Errorf("quote %w", shared.ErrNotFound)

type Repository interface {
	Load(ctx context.Context) error
	Get(ctx context.Context, id string) (*Quote, error)
	List(ctx context.Context) ([]Quote, error)
	Create(ctx context.Context, q Quote) error
	Update(ctx context.Context, id string, fn func(*Quote) error) (*Quote, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	items *collection.Collection[Quote]
}

func NewRepository(store kv.Store) Repository {
	return &repository{items: collection.New(StoreName, store, func(q Quote) string { return q.ID })}
}

func (r *repository) Load(ctx context.Context) error { return r.items.Load(ctx) }

func (r *repository) Get(_ context.Context, id string) (*Quote, error) {
	q, ok := r.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
}

func (r *repository) List(_ context.Context) ([]Quote, error) { return r.items.List(), nil }

func (r *repository) Create(ctx context.Context, q Quote) error { return r.items.Add(ctx, q) }

func (r *repository) Update(ctx context.Context, id string, fn func(*Quote) error) (*Quote, error) {
	q, ok, err := r.items.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
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
