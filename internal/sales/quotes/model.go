package quotes

import (
	"time"

	"github.com/handydesk/handydesk/internal/sales/shared"
)

// StoreName is the snapshot key of the quote collection.
const StoreName = "quotes"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var transitions = map[Status][]Status{
	StatusDraft:    {StatusSent},
	StatusSent:     {StatusApproved, StatusRejected, StatusDraft},
	StatusApproved: {},
	StatusRejected: {StatusDraft},
}

// CanTransition reports whether a quote may move from one status to another.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type LineItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Amount is quantity times unit price.
func (l LineItem) Amount() float64 { return l.Quantity * l.UnitPrice }

type Quote struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customer_id"`
	RequestID       string     `json:"request_id,omitempty"`
	Title           string     `json:"title"`
	Status          Status     `json:"status"`
	LineItems       []LineItem `json:"line_items"`
	Subtotal        float64    `json:"subtotal"`
	Tax             float64    `json:"tax"`
	TaxEnabled      bool       `json:"tax_enabled"`
	TaxAmount       float64    `json:"tax_amount"`
	Discount        float64    `json:"discount"`
	Total           float64    `json:"total"`
	RequiredDeposit float64    `json:"required_deposit"`
	ClientMessage   string     `json:"client_message,omitempty"`
	Disclaimer      string     `json:"disclaimer,omitempty"`
	InternalNotes   string     `json:"internal_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (q Quote) lines() []shared.Line {
	out := make([]shared.Line, 0, len(q.LineItems))
	for _, li := range q.LineItems {
		out = append(out, shared.Line{Quantity: li.Quantity, UnitPrice: li.UnitPrice})
	}
	return out
}

// applyTotals stores the derived money fields on q.
func (q *Quote) applyTotals(t shared.Totals) {
	q.Subtotal = t.Subtotal
	q.Discount = t.Discount
	q.Tax = t.TaxPercent
	q.TaxAmount = t.TaxAmount
	q.Total = t.Total
	q.RequiredDeposit = t.Deposit
}
