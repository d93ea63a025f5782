// Package notes implements the append-only note ledger stored as a JSON string on
// customers and requests.
package notes

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/handydesk/handydesk/internal/shared"
)

// Importance ranks a note.
type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// ParseImportance accepts low, medium or high. An empty string maps to medium.
func ParseImportance(s string) (Importance, error) {
	switch Importance(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ImportanceMedium, nil
	case ImportanceLow:
		return ImportanceLow, nil
	case ImportanceMedium:
		return ImportanceMedium, nil
	case ImportanceHigh:
		return ImportanceHigh, nil
	default:
		return "", fmt.Errorf("%w: unknown importance %q", shared.ErrValidation, s)
	}
}

// Note is a single ledger entry.
type Note struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	Timestamp  time.Time  `json:"timestamp"`
	Importance Importance `json:"importance"`
}

// Parse decodes a serialized ledger. Empty, malformed or non-array input yields an
// empty ledger; Parse never fails.
func Parse(raw string) []Note {
	if strings.TrimSpace(raw) == "" {
		return []Note{}
	}
	var list []Note
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []Note{}
	}
	if list == nil {
		return []Note{}
	}
	return list
}

// Encode serializes a ledger. A nil ledger encodes as "[]".
func Encode(list []Note) string {
	if list == nil {
		list = []Note{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		// Note has no fields json cannot encode.
		return "[]"
	}
	return string(raw)
}

// Append returns raw with note appended, preserving existing order.
func Append(raw string, note Note) string {
	list := Parse(raw)
	return Encode(append(list, note))
}

// Ledger mints notes. The zero value uses UUIDv7 ids and the wall clock.
type Ledger struct {
	NewID func() string
	Now   func() time.Time
}

// Format builds a note from content. Whitespace-only content reports false.
func (l Ledger) Format(content string, importance Importance) (Note, bool) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Note{}, false
	}
	if importance == "" {
		importance = ImportanceMedium
	}
	return Note{
		ID:         l.id(),
		Content:    trimmed,
		Timestamp:  l.now(),
		Importance: importance,
	}, true
}

func (l Ledger) id() string {
	if l.NewID != nil {
		return l.NewID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (l Ledger) now() time.Time {
	if l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}
