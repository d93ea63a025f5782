package settings

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/handydesk/handydesk/internal/platform/kv"
)

type Service struct {
	store  kv.Store
	sealer *Sealer
	clock  func() time.Time

	mu sync.Mutex
}

func NewService(store kv.Store, sealer *Sealer) *Service {
	return &Service{
		store:  store,
		sealer: sealer,
		clock:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) loadAI(ctx context.Context) (aiDocument, error) {
	var doc aiDocument
	if _, err := kv.LoadJSON(ctx, s.store, KeyAI, &doc); err != nil {
		return aiDocument{}, fmt.Errorf("settings: load ai: %w", err)
	}
	return doc, nil
}

func (s *Service) updateAI(ctx context.Context, fn func(*aiDocument) error) (AIStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadAI(ctx)
	if err != nil {
		return AIStatus{}, err
	}
	if err := fn(&doc); err != nil {
		return AIStatus{}, err
	}
	doc.UpdatedAt = s.clock()
	if err := kv.SaveJSON(ctx, s.store, KeyAI, doc); err != nil {
		return AIStatus{}, fmt.Errorf("settings: save ai: %w", err)
	}
	return doc.status(), nil
}

func (s *Service) AI(ctx context.Context) (AIStatus, error) {
	doc, err := s.loadAI(ctx)
	if err != nil {
		return AIStatus{}, err
	}
	return doc.status(), nil
}

// SetAPIKey validates and stores the key sealed. Saving a valid key leaves offline mode.
func (s *Service) SetAPIKey(ctx context.Context, key string) (AIStatus, error) {
	key = strings.TrimSpace(key)
	if err := ValidateAPIKey(key); err != nil {
		return AIStatus{}, err
	}
	sealed, err := s.sealer.Seal([]byte(key))
	if err != nil {
		return AIStatus{}, err
	}
	return s.updateAI(ctx, func(d *aiDocument) error {
		d.SealedKey = sealed
		d.KeyHint = maskKey(key)
		d.Offline = false
		return nil
	})
}

// ClearAPIKey forgets the key and switches to offline mode.
func (s *Service) ClearAPIKey(ctx context.Context) (AIStatus, error) {
	return s.updateAI(ctx, func(d *aiDocument) error {
		d.SealedKey = ""
		d.KeyHint = ""
		d.Offline = true
		return nil
	})
}

func (s *Service) SetOfflineMode(ctx context.Context, offline bool) (AIStatus, error) {
	return s.updateAI(ctx, func(d *aiDocument) error {
		d.Offline = offline
		return nil
	})
}

// Credentials returns the unsealed API key and the offline flag. A key that no longer
// opens with the current secret is reported as absent.
func (s *Service) Credentials(ctx context.Context) (key string, offline bool, err error) {
	doc, err := s.loadAI(ctx)
	if err != nil {
		return "", false, err
	}
	if doc.SealedKey == "" {
		return "", doc.Offline, nil
	}
	plain, err := s.sealer.Open(doc.SealedKey)
	if err != nil {
		return "", doc.Offline, nil
	}
	return string(plain), doc.Offline, nil
}

func (s *Service) Logo(ctx context.Context) (Logo, error) {
	logo := DefaultLogo()
	if _, err := kv.LoadJSON(ctx, s.store, KeyLogo, &logo); err != nil {
		return Logo{}, fmt.Errorf("settings: load logo: %w", err)
	}
	return logo, nil
}

func (s *Service) SetLogo(ctx context.Context, logo Logo) (Logo, error) {
	if err := ValidateLogo(logo); err != nil {
		return Logo{}, err
	}
	if err := kv.SaveJSON(ctx, s.store, KeyLogo, logo); err != nil {
		return Logo{}, fmt.Errorf("settings: save logo: %w", err)
	}
	return logo, nil
}

func (s *Service) Business(ctx context.Context) (Business, error) {
	var b Business
	if _, err := kv.LoadJSON(ctx, s.store, KeyBusiness, &b); err != nil {
		return Business{}, fmt.Errorf("settings: load business: %w", err)
	}
	return b, nil
}

func (s *Service) SetBusiness(ctx context.Context, b Business) (Business, error) {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(b.Email)
	if err := kv.SaveJSON(ctx, s.store, KeyBusiness, b); err != nil {
		return Business{}, fmt.Errorf("settings: save business: %w", err)
	}
	return b, nil
}

func (s *Service) Notifications(ctx context.Context) (NotificationPrefs, error) {
	prefs := DefaultNotificationPrefs()
	if _, err := kv.LoadJSON(ctx, s.store, KeyNotifications, &prefs); err != nil {
		return NotificationPrefs{}, fmt.Errorf("settings: load notifications: %w", err)
	}
	return prefs, nil
}

func (s *Service) SetNotifications(ctx context.Context, prefs NotificationPrefs) (NotificationPrefs, error) {
	if err := kv.SaveJSON(ctx, s.store, KeyNotifications, prefs); err != nil {
		return NotificationPrefs{}, fmt.Errorf("settings: save notifications: %w", err)
	}
	return prefs, nil
}
