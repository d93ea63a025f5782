package settings

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/shared"
)

// Persisted document keys.
const (
	KeyAI            = "ai-settings"
	KeyLogo          = "logo-settings"
	KeyBusiness      = "business-settings"
	KeyNotifications = "notification-settings"
)

const (
	apiKeyPrefix    = "sk-"
	apiKeyMinLength = 32
	maxLogoBytes    = 2 << 20
)

// APIKeyError carries the message shown next to the API key field.
type APIKeyError struct {
	Message string
}

func (e *APIKeyError) Error() string { return e.Message }

// ValidateAPIKey checks the shape of an assistant API key. It never contacts the provider.
func ValidateAPIKey(key string) error {
	switch {
	case key == "":
		return &APIKeyError{Message: "API key is required"}
	case !strings.HasPrefix(key, apiKeyPrefix):
		return &APIKeyError{Message: "Invalid API key format"}
	case len(key) < apiKeyMinLength:
		return &APIKeyError{Message: "API key is too short"}
	}
	return nil
}

// aiDocument is the stored form; the key never leaves the package unsealed except
// through Service.Credentials.
type aiDocument struct {
	SealedKey string    `json:"sealed_key,omitempty"`
	KeyHint   string    `json:"key_hint,omitempty"`
	Offline   bool      `json:"offline"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AIStatus is the public view of the assistant settings.
type AIStatus struct {
	HasKey    bool      `json:"has_key"`
	KeyHint   string    `json:"key_hint,omitempty"`
	Offline   bool      `json:"offline"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

func (d aiDocument) status() AIStatus {
	return AIStatus{HasKey: d.SealedKey != "", KeyHint: d.KeyHint, Offline: d.Offline, UpdatedAt: d.UpdatedAt}
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return apiKeyPrefix + "..." + key[len(key)-4:]
}

type Logo struct {
	Logo          *string `json:"logo"`
	CollapsedLogo *string `json:"collapsed_logo"`
	ShowText      bool    `json:"show_text"`
}

var dataURL = regexp.MustCompile(`^data:image/(png|jpeg|gif|webp|svg\+xml);base64,([A-Za-z0-9+/=\s]+)$`)

// ValidateLogo accepts base64 image data URLs up to 2 MiB decoded. Nil fields clear the image.
func ValidateLogo(l Logo) error {
	fields := []struct {
		name string
		v    *string
	}{{"logo", l.Logo}, {"collapsed_logo", l.CollapsedLogo}}
	for _, f := range fields {
		name, v := f.name, f.v
		if v == nil {
			continue
		}
		m := dataURL.FindStringSubmatch(*v)
		if m == nil {
			return fmt.Errorf("%w: %s must be a base64 image data URL", shared.ErrValidation, name)
		}
		decoded, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(m[2]), ""))
		if err != nil {
			return fmt.Errorf("%w: %s is not valid base64", shared.ErrValidation, name)
		}
		if len(decoded) > maxLogoBytes {
			return fmt.Errorf("%w: %s exceeds 2 MiB", shared.ErrValidation, name)
		}
	}
	return nil
}

// Business is the company profile printed on quote documents.
type Business struct {
	Name    string `json:"name" validate:"max=200"`
	Address string `json:"address" validate:"max=200"`
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=50"`
	Zip     string `json:"zip" validate:"max=20"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type NotificationPrefs struct {
	Email            bool `json:"email"`
	SMS              bool `json:"sms"`
	Push             bool `json:"push"`
	JobUpdates       bool `json:"job_updates"`
	CustomerMessages bool `json:"customer_messages"`
	SystemAlerts     bool `json:"system_alerts"`
}

// DefaultNotificationPrefs applies until the owner saves preferences.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{Email: true, Push: true, JobUpdates: true, CustomerMessages: true, SystemAlerts: true}
}

func DefaultLogo() Logo {
	return Logo{ShowText: true}
}
