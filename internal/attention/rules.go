// Package attention derives which jobs, leads, customers and draft quotes need follow-up.
//
// Every function here is pure: callers pass snapshots of the stores and the current time.
package attention

import (
	"fmt"
	"sort"
	"time"

	"github.com/handydesk/handydesk/internal/sales/customers"
	"github.com/handydesk/handydesk/internal/sales/jobs"
	"github.com/handydesk/handydesk/internal/sales/quotes"
)

const day = 24 * time.Hour

// Attention types.
const (
	TypeNoContact      = "no_contact"
	TypeProposalNeeded = "proposal_needed"
	TypeProposalDue    = jobs.AttentionProposalDue
)

// DefaultStaleAfter is the age at which a draft quote needs attention.
const DefaultStaleAfter = 24 * time.Hour

// Rules holds the day thresholds. Both comparisons are strict.
type Rules struct {
	NoContactDays int
	FollowUpDays  int
}

func DefaultRules() Rules {
	return Rules{NoContactDays: 7, FollowUpDays: 14}
}

// JobAttention is a job flagged by the first rule that matched it.
type JobAttention struct {
	Job              jobs.Job `json:"job"`
	Type             string   `json:"type"`
	Message          string   `json:"message"`
	DaysSinceContact int      `json:"days_since_contact"`
}

type Lead struct {
	Job              jobs.Job            `json:"job"`
	Customer         *customers.Customer `json:"customer,omitempty"`
	DaysSinceCreated int                 `json:"days_since_created"`
}

// ContactNeededEntry is a customer whose latest job has gone quiet.
type ContactNeededEntry struct {
	Customer        customers.Customer `json:"customer"`
	LatestJob       jobs.Job           `json:"latest_job"`
	DaysSinceUpdate int                `json:"days_since_update"`
}

type StaleDraft struct {
	Quote    quotes.Quote `json:"quote"`
	AgeHours int          `json:"age_hours"`
}

func wholeDays(from, now time.Time) int {
	return int(now.Sub(from) / day)
}

func index(list []customers.Customer) map[string]*customers.Customer {
	out := make(map[string]*customers.Customer, len(list))
	for i := range list {
		out[list[i].ID] = &list[i]
	}
	return out
}

// JobFlags evaluates the rules per job in input order. Jobs whose customer is unknown, or
// which have no contact date on the job or the customer, are skipped.
func JobFlags(list []jobs.Job, people []customers.Customer, now time.Time, rules Rules) []JobAttention {
	byID := index(people)
	out := make([]JobAttention, 0)
	for _, job := range list {
		customer, ok := byID[job.CustomerID]
		if !ok {
			continue
		}
		contact := job.LastContactDate
		if contact == nil {
			contact = customer.LastContactDate
		}
		if contact == nil {
			continue
		}
		days := wholeDays(*contact, now)
		flag := JobAttention{Job: job, DaysSinceContact: days}
		switch {
		case days > rules.NoContactDays:
			flag.Type = TypeNoContact
			flag.Message = fmt.Sprintf("No contact in %d days", days)
		case job.Status.IsPending() && job.Price == 0:
			flag.Type = TypeProposalNeeded
			flag.Message = "Proposal needed"
		case job.RequiresAttention != nil && job.RequiresAttention.Type == TypeProposalDue:
			flag.Type = TypeProposalDue
			flag.Message = "Proposal due tomorrow"
		default:
			continue
		}
		out = append(out, flag)
	}
	return out
}

// Leads lists uncontacted leads, oldest first. Ties keep input order.
func Leads(list []jobs.Job, people []customers.Customer, now time.Time) []Lead {
	byID := index(people)
	out := make([]Lead, 0)
	for _, job := range list {
		if !job.Status.IsLead() {
			continue
		}
		out = append(out, Lead{
			Job:              job,
			Customer:         byID[job.CustomerID],
			DaysSinceCreated: wholeDays(job.CreatedAt, now),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysSinceCreated > out[j].DaysSinceCreated
	})
	return out
}

// ContactNeeded lists customers whose most recently updated job has been idle for more
// than FollowUpDays. Customers without jobs are not listed.
func ContactNeeded(people []customers.Customer, list []jobs.Job, now time.Time, rules Rules) []ContactNeededEntry {
	latest := make(map[string]jobs.Job)
	for _, job := range list {
		cur, seen := latest[job.CustomerID]
		if !seen || job.UpdatedAt.After(cur.UpdatedAt) {
			latest[job.CustomerID] = job
		}
	}
	out := make([]ContactNeededEntry, 0)
	for _, c := range people {
		job, ok := latest[c.ID]
		if !ok {
			continue
		}
		days := wholeDays(job.UpdatedAt, now)
		if days > rules.FollowUpDays {
			out = append(out, ContactNeededEntry{Customer: c, LatestJob: job, DaysSinceUpdate: days})
		}
	}
	return out
}

// StaleDrafts lists draft quotes created at least after ago.
func StaleDrafts(list []quotes.Quote, now time.Time, after time.Duration) []StaleDraft {
	out := make([]StaleDraft, 0)
	for _, q := range list {
		if q.Status != quotes.StatusDraft {
			continue
		}
		age := now.Sub(q.CreatedAt)
		if age >= after {
			out = append(out, StaleDraft{Quote: q, AgeHours: int(age / time.Hour)})
		}
	}
	return out
}
