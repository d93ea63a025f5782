package invoices

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	salesshared "github.com/handydesk/handydesk/internal/sales/shared"
)

// StoreName is the snapshot key of the invoice collection.
const StoreName = "invoices"

// DefaultTerms applies when an invoice is created without payment terms.
const DefaultTerms = "Net 30"

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	// StatusOverdue is derived on read for pending invoices past their due date. It is
	// never stored.
	StatusOverdue Status = "overdue"
)

type Item struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Amount is quantity times rate.
func (i Item) Amount() float64 { return i.Quantity * i.Rate }

type Invoice struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	JobID      string     `json:"job_id"`
	JobTitle   string     `json:"job_title"`
	CustomerID string     `json:"customer_id"`
	Items      []Item     `json:"items"`
	Amount     float64    `json:"amount"`
	Notes      string     `json:"notes,omitempty"`
	Terms      string     `json:"terms"`
	IssuedDate string     `json:"issued_date"`
	DueDate    string     `json:"due_date"`
	Status     Status     `json:"status"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// StatusOn returns the status shown for the invoice on the given YYYY-MM-DD day.
func (inv Invoice) StatusOn(day string) Status {
	if inv.Status == StatusPending && inv.DueDate != "" && inv.DueDate < day {
		return StatusOverdue
	}
	return inv.Status
}

func total(items []Item) float64 {
	lines := make([]salesshared.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, salesshared.Line{Quantity: it.Quantity, UnitPrice: it.Rate})
	}
	return salesshared.Subtotal(lines).InexactFloat64()
}

// TermDays parses "Net N" terms, and "Due on receipt" as zero days.
func TermDays(terms string) (int, bool) {
	t := strings.ToLower(strings.TrimSpace(terms))
	if t == "due on receipt" {
		return 0, true
	}
	rest, ok := strings.CutPrefix(t, "net")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func formatNumber(seq int) string { return fmt.Sprintf("INV-%03d", seq) }

func parseNumber(number string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(number, "INV-"))
	if err != nil {
		return 0
	}
	return n
}
