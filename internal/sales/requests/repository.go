package requests

import (
	"context"
	"fmt"

	"github.com/handydesk/handydesk/internal/platform/collection"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/shared"
)

var ErrNotFound = fmt.Errorf("request %w", shared.ErrNotFound)

type Repository interface {
	Load(ctx context.Context) error
	Get(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context) ([]Request, error)
	Create(ctx context.Context, req Request) error
	Update(ctx context.Context, id string, fn func(*Request) error) (*Request, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	items *collection.Collection[Request]
}

func NewRepository(store kv.Store) Repository {
	return &repository{items: collection.New(StoreName, store, func(r Request) string { return r.ID })}
}

func (r *repository) Load(ctx context.Context) error { return r.items.Load(ctx) }

func (r *repository) Get(_ context.Context, id string) (*Request, error) {
	req, ok := r.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &req, nil
}

func (r *repository) List(_ context.Context) ([]Request, error) { return r.items.List(), nil }

func (r *repository) Create(ctx context.Context, req Request) error { return r.items.Add(ctx, req) }

func (r *repository) Update(ctx context.Context, id string, fn func(*Request) error) (*Request, error) {
	req, ok, err := r.items.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &req, nil
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
