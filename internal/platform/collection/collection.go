// Package collection provides insertion-ordered, persisted entity stores.
//
// A Collection keeps every item in memory, keyed by id and ordered by first insertion.
// Each mutation writes the whole ordered snapshot to the kv backend; a failed write
// rolls the in-memory change back.
package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/shared"
)

// ErrCorruptSnapshot is returned by Load when the persisted snapshot cannot be decoded.
var ErrCorruptSnapshot = errors.New("collection: corrupt snapshot")

// Collection is safe for concurrent use.
type Collection[T any] struct {
	name  string
	store kv.Store
	key   func(T) string

	mu    sync.RWMutex
	order []string
	items map[string]T
}

// New returns an empty collection persisted under name. key extracts the item id.
func New[T any](name string, store kv.Store, key func(T) string) *Collection[T] {
	return &Collection[T]{
		name:  name,
		store: store,
		key:   key,
		items: make(map[string]T),
	}
}

// Name is the logical store name used as the snapshot key.
func (c *Collection[T]) Name() string { return c.name }

// Load replaces the in-memory state with the persisted snapshot. A missing snapshot
// yields an empty collection; an undecodable one also yields an empty collection and
// returns ErrCorruptSnapshot so the caller can log it.
func (c *Collection[T]) Load(ctx context.Context) error {
	raw, err := c.store.Get(ctx, c.name)
	if errors.Is(err, kv.ErrNotFound) {
		c.reset(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("collection %s: load: %w", c.name, err)
	}
	var list []T
	if err := decode(raw, &list); err != nil {
		c.reset(nil)
		return fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, c.name, err)
	}
	c.reset(list)
	return nil
}

func (c *Collection[T]) reset(list []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = make([]string, 0, len(list))
	c.items = make(map[string]T, len(list))
	for _, item := range list {
		id := c.key(item)
		if _, dup := c.items[id]; dup {
			c.items[id] = item
			continue
		}
		c.order = append(c.order, id)
		c.items[id] = item
	}
}

// Add appends item. An item whose id is already present is rejected with shared.ErrDuplicate.
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	id := c.key(item)
	if id == "" {
		return fmt.Errorf("%w: %s item without id", shared.ErrValidation, c.name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; exists {
		return fmt.Errorf("%w: %s %s", shared.ErrDuplicate, c.name, id)
	}
	c.order = append(c.order, id)
	c.items[id] = item
	if err := c.persistLocked(ctx); err != nil {
		c.order = c.order[:len(c.order)-1]
		delete(c.items, id)
		return err
	}
	return nil
}

// Upsert replaces the item with the same id in place, or appends it when absent.
func (c *Collection[T]) Upsert(ctx context.Context, item T) error {
	id := c.key(item)
	if id == "" {
		return fmt.Errorf("%w: %s item without id", shared.ErrValidation, c.name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, existed := c.items[id]
	if !existed {
		c.order = append(c.order, id)
	}
	c.items[id] = item
	if err := c.persistLocked(ctx); err != nil {
		if existed {
			c.items[id] = prev
		} else {
			c.order = c.order[:len(c.order)-1]
			delete(c.items, id)
		}
		return err
	}
	return nil
}

// Get returns the item with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// Update applies fn to a copy of the item with id and stores the result. When id is
// unknown nothing happens and ok is false. An error from fn aborts the update unchanged.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (item T, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, exists := c.items[id]
	if !exists {
		return item, false, nil
	}
	next := prev
	if err := fn(&next); err != nil {
		return prev, true, err
	}
	if c.key(next) != id {
		return prev, true, fmt.Errorf("%w: %s id cannot change", shared.ErrValidation, c.name)
	}
	c.items[id] = next
	if err := c.persistLocked(ctx); err != nil {
		c.items[id] = prev
		return prev, true, err
	}
	return next, true, nil
}

// Delete removes the item with id. Unknown ids are a no-op reporting false.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, exists := c.items[id]
	if !exists {
		return false, nil
	}
	idx := c.indexLocked(id)
	prevOrder := append([]string(nil), c.order...)
	c.order = append(c.order[:idx], c.order[idx+1:]...)
	delete(c.items, id)
	if err := c.persistLocked(ctx); err != nil {
		c.order = prevOrder
		c.items[id] = prev
		return false, err
	}
	return true, nil
}

// Clear removes every item.
func (c *Collection[T]) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prevOrder, prevItems := c.order, c.items
	c.order = nil
	c.items = make(map[string]T)
	if err := c.persistLocked(ctx); err != nil {
		c.order, c.items = prevOrder, prevItems
		return err
	}
	return nil
}

// List returns a snapshot of all items in insertion order. The slice is a copy, so it is
// safe to mutate the collection while iterating over it.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Len reports the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *Collection[T]) indexLocked(id string) int {
	for i, v := range c.order {
		if v == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) persistLocked(ctx context.Context) error {
	list := make([]T, 0, len(c.order))
	for _, id := range c.order {
		list = append(list, c.items[id])
	}
	if err := kv.SaveJSON(ctx, c.store, c.name, list); err != nil {
		return fmt.Errorf("collection %s: persist: %w", c.name, err)
	}
	return nil
}

func decode[T any](raw []byte, list *[]T) error {
	return json.Unmarshal(raw, list)
}
