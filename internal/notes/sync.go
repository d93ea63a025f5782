package notes

import (
	"context"
	"fmt"
)

// CustomerNotes is the narrow view of the customer store needed to sync notes.
type CustomerNotes interface {
	// UpdateCustomerNotes replaces the customer's serialized ledger with fn(current)
	// as a patch update. ok is false, and fn is not called, when the customer does
	// not exist.
	UpdateCustomerNotes(ctx context.Context, customerID string, fn func(raw string) string) (ok bool, err error)
}

// Syncer copies notes written on quotes and requests into the customer ledger.
type Syncer struct {
	customers CustomerNotes
	ledger    Ledger
}

// NewSyncer constructs a Syncer.
func NewSyncer(customers CustomerNotes, ledger Ledger) *Syncer {
	return &Syncer{customers: customers, ledger: ledger}
}

// Ledger exposes the note factory used by the syncer.
func (s *Syncer) Ledger() Ledger { return s.ledger }

// SyncToCustomer appends a note to the customer's ledger and returns it. When the
// customer does not exist or content is blank, nothing is written and the note is nil.
func (s *Syncer) SyncToCustomer(ctx context.Context, customerID, content string, importance Importance) (*Note, error) {
	note, ok := s.ledger.Format(content, importance)
	if !ok {
		return nil, nil
	}
	found, err := s.SyncNote(ctx, customerID, note)
	if err != nil || !found {
		return nil, err
	}
	return &note, nil
}

// SyncNote appends an already formatted note to the customer's ledger. found is false
// when the customer does not exist.
func (s *Syncer) SyncNote(ctx context.Context, customerID string, note Note) (found bool, err error) {
	found, err = s.customers.UpdateCustomerNotes(ctx, customerID, func(raw string) string {
		return Append(raw, note)
	})
	if err != nil {
		return false, fmt.Errorf("notes: sync to customer %s: %w", customerID, err)
	}
	return found, nil
}
