package attention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handydesk/handydesk/internal/sales/customers"
	"github.com/handydesk/handydesk/internal/sales/jobs"
	"github.com/handydesk/handydesk/internal/sales/quotes"
)

var now = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func daysAgo(n float64) *time.Time {
	t := now.Add(-time.Duration(n * float64(day)))
	return &t
}

func TestJobFlagsRules(t *testing.T) {
	people := []customers.Customer{
		{ID: "c_1", LastContactDate: daysAgo(2)},
		{ID: "c_2"},
	}
	list := []jobs.Job{
		{ID: "stale", CustomerID: "c_1", Status: jobs.StatusScheduled, Price: 100, LastContactDate: daysAgo(8.5)},
		{ID: "boundary", CustomerID: "c_1", Status: jobs.StatusScheduled, Price: 100, LastContactDate: daysAgo(7.9)},
		{ID: "needs-proposal", CustomerID: "c_1", Status: jobs.StatusInitialContact},
		{ID: "due", CustomerID: "c_1", Status: jobs.StatusQuoteSent, Price: 300, RequiresAttention: &jobs.Attention{Type: jobs.AttentionProposalDue}},
		{ID: "stale-and-pending", CustomerID: "c_1", Status: jobs.StatusLead, LastContactDate: daysAgo(10)},
		{ID: "orphan", CustomerID: "c_missing", Status: jobs.StatusLead, LastContactDate: daysAgo(30)},
		{ID: "no-contact-date", CustomerID: "c_2", Status: jobs.StatusLead},
		{ID: "priced-lead", CustomerID: "c_1", Status: jobs.StatusLead, Price: 50},
	}

	got := JobFlags(list, people, now, DefaultRules())
	require.Len(t, got, 4)

	assert.Equal(t, "stale", got[0].Job.ID)
	assert.Equal(t, TypeNoContact, got[0].Type)
	assert.Equal(t, "No contact in 8 days", got[0].Message)

	assert.Equal(t, "needs-proposal", got[1].Job.ID)
	assert.Equal(t, TypeProposalNeeded, got[1].Type)
	assert.Equal(t, "Proposal needed", got[1].Message)

	assert.Equal(t, "due", got[2].Job.ID)
	assert.Equal(t, "Proposal due tomorrow", got[2].Message)

	assert.Equal(t, "stale-and-pending", got[3].Job.ID)
	assert.Equal(t, TypeNoContact, got[3].Type)
}

func TestJobFlagsExactThresholdIsNotFlagged(t *testing.T) {
	people := []customers.Customer{{ID: "c_1", LastContactDate: daysAgo(7)}}
	list := []jobs.Job{{ID: "j", CustomerID: "c_1", Status: jobs.StatusScheduled, Price: 10}}
	assert.Empty(t, JobFlags(list, people, now, DefaultRules()))
	assert.Len(t, JobFlags(list, people, now, Rules{NoContactDays: 6}), 1)
}

func TestLeadsSortedOldestFirstAndStable(t *testing.T) {
	people := []customers.Customer{{ID: "c_1", Name: "Ann"}}
	list := []jobs.Job{
		{ID: "a", CustomerID: "c_1", Status: jobs.StatusLead, CreatedAt: *daysAgo(1)},
		{ID: "b", CustomerID: "c_x", Status: jobs.StatusLead, CreatedAt: *daysAgo(5)},
		{ID: "c", CustomerID: "c_1", Status: jobs.StatusScheduled, CreatedAt: *daysAgo(9)},
		{ID: "d", CustomerID: "c_1", Status: jobs.StatusLead, CreatedAt: *daysAgo(1.5)},
	}
	got := Leads(list, people, now)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Job.ID)
	assert.Nil(t, got[0].Customer)
	assert.Equal(t, 5, got[0].DaysSinceCreated)
	assert.Equal(t, "a", got[1].Job.ID)
	assert.Equal(t, "d", got[2].Job.ID)
	require.NotNil(t, got[1].Customer)
	assert.Equal(t, "Ann", got[1].Customer.Name)
}

func TestContactNeededUsesLatestJob(t *testing.T) {
	people := []customers.Customer{{ID: "c_1"}, {ID: "c_2"}, {ID: "c_3"}}
	list := []jobs.Job{
		{ID: "old", CustomerID: "c_1", UpdatedAt: *daysAgo(40)},
		{ID: "recent", CustomerID: "c_1", UpdatedAt: *daysAgo(3)},
		{ID: "first", CustomerID: "c_2", UpdatedAt: *daysAgo(20)},
		{ID: "tie", CustomerID: "c_2", UpdatedAt: *daysAgo(20)},
	}
	got := ContactNeeded(people, list, now, DefaultRules())
	require.Len(t, got, 1)
	assert.Equal(t, "c_2", got[0].Customer.ID)
	assert.Equal(t, "first", got[0].LatestJob.ID)
	assert.Equal(t, 20, got[0].DaysSinceUpdate)

	edge := []jobs.Job{{ID: "edge", CustomerID: "c_3", UpdatedAt: *daysAgo(14)}}
	assert.Empty(t, ContactNeeded(people, edge, now, DefaultRules()))
}

func TestStaleDrafts(t *testing.T) {
	list := []quotes.Quote{
		{ID: "fresh", Status: quotes.StatusDraft, CreatedAt: now.Add(-23 * time.Hour)},
		{ID: "exact", Status: quotes.StatusDraft, CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "sent", Status: quotes.StatusSent, CreatedAt: now.Add(-72 * time.Hour)},
		{ID: "old", Status: quotes.StatusDraft, CreatedAt: now.Add(-50 * time.Hour)},
	}
	got := StaleDrafts(list, now, DefaultStaleAfter)
	require.Len(t, got, 2)
	assert.Equal(t, "exact", got[0].Quote.ID)
	assert.Equal(t, "old", got[1].Quote.ID)
	assert.Equal(t, 50, got[1].AgeHours)
}
