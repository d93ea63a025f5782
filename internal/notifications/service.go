package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/platform/collection"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/shared"
)

var ErrNotFound = fmt.Errorf("notification %w", shared.ErrNotFound)

type Service struct {
	items *collection.Collection[Notification]
	clock func() time.Time
}

func NewService(store kv.Store) *Service {
	return &Service{
		items: collection.New(StoreName, store, func(n Notification) string { return n.ID }),
		clock: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Load(ctx context.Context) error { return s.items.Load(ctx) }

// Upsert stores n under its id, replacing an existing notification in place. The
// original creation time is kept on replacement.
func (s *Service) Upsert(ctx context.Context, n Notification) error {
	if n.ID == "" {
		n.ID = shared.NewID(shared.PrefixNotification)
	}
	if prev, ok := s.items.Get(n.ID); ok {
		n.CreatedAt = prev.CreatedAt
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.clock()
	}
	return s.items.Upsert(ctx, n)
}

func (s *Service) List(context.Context) []Notification { return s.items.List() }

// WithPrefix lists the ids of notifications whose id starts with prefix.
func (s *Service) WithPrefix(prefix string) []string {
	var out []string
	for _, n := range s.items.List() {
		if strings.HasPrefix(n.ID, prefix) {
			out = append(out, n.ID)
		}
	}
	return out
}

func (s *Service) Remove(ctx context.Context, id string) error {
	deleted, err := s.items.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Clear(ctx context.Context) error { return s.items.Clear(ctx) }
