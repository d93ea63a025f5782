package jobs

import (
	"context"
	"fmt"

	"github.com/handydesk/handydesk/internal/platform/collection"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/shared"
)

var ErrNotFound = fmt.Errorf("job %w", shared.ErrNotFound)

type Repository interface {
	Load(ctx context.Context) error
	Get(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	Create(ctx context.Context, job Job) error
	Update(ctx context.Context, id string, fn func(*Job) error) (*Job, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	items *collection.Collection[Job]
}

func NewRepository(store kv.Store) Repository {
	return &repository{items: collection.New(StoreName, store, func(j Job) string { return j.ID })}
}

func (r *repository) Load(ctx context.Context) error { return r.items.Load(ctx) }

func (r *repository) Get(_ context.Context, id string) (*Job, error) {
	j, ok := r.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &j, nil
}

func (r *repository) List(_ context.Context) ([]Job, error) { return r.items.List(), nil }

func (r *repository) Create(ctx context.Context, job Job) error { return r.items.Add(ctx, job) }

func (r *repository) Update(ctx context.Context, id string, fn func(*Job) error) (*Job, error) {
	j, ok, err := r.items.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &j, nil
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
