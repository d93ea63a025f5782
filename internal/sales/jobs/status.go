package jobs

import (
	"fmt"
	"strings"

	"github.com/handydesk/handydesk/internal/shared"
)

// Status is the canonical pipeline stage of a job.
type Status string

const (
	StatusLead             Status = "LEAD - Not Contacted"
	StatusInitialContact   Status = "Initial Contact Made"
	StatusAwaitingResponse Status = "Awaiting Response"
	StatusQuoteSent        Status = "Quote Sent"
	StatusQuoteAccepted    Status = "Quote Accepted"
	StatusScheduled        Status = "Scheduled"
	StatusInProgress       Status = "In Progress"
	StatusOnHold           Status = "On Hold"
	StatusCompleted        Status = "Completed"
	StatusCancelled        Status = "Cancelled"
	StatusFollowUp         Status = "Follow-up Required"
)

// Statuses lists every stage in pipeline order.
var Statuses = []Status{
	StatusLead,
	StatusInitialContact,
	StatusAwaitingResponse,
	StatusQuoteSent,
	StatusQuoteAccepted,
	StatusScheduled,
	StatusInProgress,
	StatusOnHold,
	StatusCompleted,
	StatusCancelled,
	StatusFollowUp,
}

// legacyStatuses maps the short vocabulary still sent by older clients.
var legacyStatuses = map[string]Status{
	"pending":     StatusLead,
	"in-progress": StatusInProgress,
	"completed":   StatusCompleted,
	"scheduled":   StatusScheduled,
	"cancelled":   StatusCancelled,
}

// transitions is total over Statuses: every stage has an entry, and a missing target
// means the move is not allowed.
var transitions = map[Status][]Status{
	StatusLead:             {StatusInitialContact, StatusCancelled},
	StatusInitialContact:   {StatusAwaitingResponse, StatusQuoteSent, StatusFollowUp, StatusCancelled},
	StatusAwaitingResponse: {StatusQuoteSent, StatusFollowUp, StatusInitialContact, StatusCancelled},
	StatusQuoteSent:        {StatusQuoteAccepted, StatusFollowUp, StatusAwaitingResponse, StatusCancelled},
	StatusQuoteAccepted:    {StatusScheduled, StatusCancelled},
	StatusScheduled:        {StatusInProgress, StatusOnHold, StatusCancelled},
	StatusInProgress:       {StatusOnHold, StatusCompleted, StatusCancelled},
	StatusOnHold:           {StatusScheduled, StatusInProgress, StatusCancelled},
	StatusCompleted:        {StatusFollowUp},
	StatusCancelled:        {StatusLead},
	StatusFollowUp:         {StatusInitialContact, StatusQuoteSent, StatusScheduled, StatusCompleted, StatusCancelled},
}

// ParseStatus accepts the pipeline names (case-insensitive) and the legacy short forms.
func ParseStatus(s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	if st, ok := legacyStatuses[strings.ToLower(trimmed)]; ok {
		return st, nil
	}
	for _, st := range Statuses {
		if strings.EqualFold(string(st), trimmed) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown job status %q", shared.ErrValidation, s)
}

// CanTransition reports whether a job may move from one stage to another. Staying in
// the same stage is always allowed.
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

// Next lists the stages reachable from s.
func (s Status) Next() []Status {
	return append([]Status(nil), transitions[s]...)
}

// IsPending reports whether the job is still before any proposal has gone out.
func (s Status) IsPending() bool {
	switch s {
	case StatusLead, StatusInitialContact, StatusAwaitingResponse:
		return true
	}
	return false
}

// IsLead reports whether the job is an uncontacted lead.
func (s Status) IsLead() bool { return s == StatusLead }

// UnmarshalText normalizes legacy values when decoding stored or submitted jobs.
func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}
