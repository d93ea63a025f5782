package requests

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/handydesk/handydesk/internal/shared"
)

// StoreName is the snapshot key of the request collection.
const StoreName = "requests"

type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusNew:        {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNew},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether a request may move from one status to another.
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

// TimeSlot is a preferred time of day for the visit.
type TimeSlot string

const (
	AnyTime   TimeSlot = "any_time"
	Morning   TimeSlot = "morning"
	Afternoon TimeSlot = "afternoon"
	Evening   TimeSlot = "evening"
)

var slotOrder = []TimeSlot{AnyTime, Morning, Afternoon, Evening}

// TimeSlots is a set of preferred time slots, kept in canonical order without duplicates.
type TimeSlots []TimeSlot

// NewTimeSlots normalizes slots, rejecting unknown names.
func NewTimeSlots(slots ...TimeSlot) (TimeSlots, error) {
	seen := make(map[TimeSlot]bool, len(slots))
	for _, s := range slots {
		s = TimeSlot(strings.ToLower(strings.TrimSpace(string(s))))
		if !validSlot(s) {
			return nil, fmt.Errorf("%w: unknown time slot %q", shared.ErrValidation, s)
		}
		seen[s] = true
	}
	out := make(TimeSlots, 0, len(seen))
	for _, s := range slotOrder {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out, nil
}

func validSlot(s TimeSlot) bool {
	for _, v := range slotOrder {
		if v == s {
			return true
		}
	}
	return false
}

// Has reports whether slot is in the set.
func (t TimeSlots) Has(slot TimeSlot) bool {
	for _, s := range t {
		if s == slot {
			return true
		}
	}
	return false
}

func (t *TimeSlots) UnmarshalJSON(b []byte) error {
	var raw []TimeSlot
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	slots, err := NewTimeSlots(raw...)
	if err != nil {
		return err
	}
	*t = slots
	return nil
}

type PreferredDates struct {
	Primary   string `json:"primary,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Secondary string `json:"secondary,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type Request struct {
	ID                 string         `json:"id"`
	ClientID           string         `json:"client_id"`
	Title              string         `json:"title"`
	Details            string         `json:"details,omitempty"`
	PreferredDates     PreferredDates `json:"preferred_dates"`
	PreferredTimes     TimeSlots      `json:"preferred_times"`
	RequiresAssessment bool           `json:"requires_assessment"`
	InternalNotes      string         `json:"internal_notes"`
	Status             Status         `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
