package jobs

import "time"

// StoreName is the snapshot key of the job collection.
const StoreName = "jobs"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AttentionProposalDue is the only attention tag set directly on a job; the other
// tags are derived on read.
const AttentionProposalDue = "proposal_due"

type Attention struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type Job struct {
	ID                string     `json:"id"`
	CustomerID        string     `json:"customer_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Status            Status     `json:"status"`
	ScheduledDate     string     `json:"scheduled_date,omitempty"`
	StartDate         string     `json:"start_date,omitempty"`
	EndDate           string     `json:"end_date,omitempty"`
	WorkingDays       int        `json:"working_days"`
	EstimatedHours    float64    `json:"estimated_hours,omitempty"`
	Priority          Priority   `json:"priority"`
	LeadSource        string     `json:"lead_source,omitempty"`
	Location          string     `json:"location,omitempty"`
	Price             float64    `json:"price"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	LastContactDate   *time.Time `json:"last_contact_date,omitempty"`
	RequiresAttention *Attention `json:"requires_attention,omitempty"`
}
