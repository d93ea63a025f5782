package quotes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handydesk/handydesk/internal/notes"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/sales/customers"
	"github.com/handydesk/handydesk/internal/sales/requests"
	"github.com/handydesk/handydesk/internal/settings"
	"github.com/handydesk/handydesk/internal/shared"
)

var t0 = time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)

type staticProfile settings.Business

func (p staticProfile) Business(context.Context) (settings.Business, error) {
	return settings.Business(p), nil
}

type testEnv struct {
	quotes    *Service
	customers *customers.Service
	requests  *requests.Service
	now       *time.Time
}

func newTestEnv(t *testing.T, cfg Config) testEnv {
	t.Helper()
	store := kv.NewMemory()
	customerSvc := customers.NewService(customers.NewRepository(store))
	syncer := notes.NewSyncer(customerSvc, notes.Ledger{})
	requestSvc := requests.NewService(requests.NewRepository(store), syncer)
	profile := staticProfile{Name: "Fix-It Co", City: "Rapid City", State: "SD", Zip: "57701"}
	svc := NewService(NewRepository(store), cfg, customerSvc, requestSvc, syncer, profile)
	now := t0
	svc.clock = func() time.Time { return now }
	n, l := 0, 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("q_%d", n)
	}
	svc.newLineID = func() string {
		l++
		return fmt.Sprintf("li_%d", l)
	}
	return testEnv{quotes: svc, customers: customerSvc, requests: requestSvc, now: &now}
}

func (e testEnv) customer(t *testing.T) *customers.Customer {
	t.Helper()
	c, err := e.customers.Create(context.Background(), customers.CreateCustomerRequest{FirstName: "Lee", LastName: "Ortiz", Address: "4 Elm St"})
	require.NoError(t, err)
	return c
}

func TestEndToEndQuoteTotals(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	c := env.customer(t)

	q, err := env.quotes.Create(context.Background(), CreateQuoteRequest{
		CustomerID: c.ID,
		Title:      "Deck repair",
		LineItems:  []LineItemInput{{Name: "Boards", Quantity: 2, UnitPrice: 50}},
		Discount:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, q.Status)
	assert.True(t, q.TaxEnabled)
	assert.Equal(t, 100.0, q.Subtotal)
	assert.Equal(t, 4.5, q.Tax)
	assert.InDelta(t, 4.05, q.TaxAmount, 1e-9)
	assert.InDelta(t, 94.05, q.Total, 1e-9)
	assert.Equal(t, "li_1", q.LineItems[0].ID)
}

func TestTaxDisabledZeroesTaxFields(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	off := false
	q, err := env.quotes.Create(context.Background(), CreateQuoteRequest{
		CustomerID: "c_1",
		Title:      "Paint",
		LineItems:  []LineItemInput{{Name: "Labor", Quantity: 3, UnitPrice: 40}},
		Discount:   20,
		TaxEnabled: &off,
	})
	require.NoError(t, err)
	assert.Zero(t, q.Tax)
	assert.Zero(t, q.TaxAmount)
	assert.InDelta(t, 100.0, q.Total, 1e-9)
}

func TestConfiguredTaxRate(t *testing.T) {
	env := newTestEnv(t, Config{TaxRate: 0.1})
	totals := env.quotes.Preview(PreviewRequest{
		LineItems:  []LineItemInput{{Name: "x", Quantity: 1, UnitPrice: 200}},
		TaxEnabled: true,
	})
	assert.InDelta(t, 220.0, totals.Total, 1e-9)
	assert.InDelta(t, 10.0, totals.TaxPercent, 1e-9)
}

func TestDepositCap(t *testing.T) {
	req := CreateQuoteRequest{
		CustomerID:      "c_1",
		Title:           "Fence",
		LineItems:       []LineItemInput{{Name: "Posts", Quantity: 1, UnitPrice: 50}},
		RequiredDeposit: 60,
	}

	env := newTestEnv(t, DefaultConfig())
	_, err := env.quotes.Create(context.Background(), req)
	require.ErrorIs(t, err, shared.ErrValidation)

	lenient := newTestEnv(t, Config{TaxRate: 0.045})
	q, err := lenient.quotes.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 60.0, q.RequiredDeposit)
}

func TestCreateSyncsInternalNotes(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	ctx := context.Background()
	c := env.customer(t)

	_, err := env.quotes.Create(ctx, CreateQuoteRequest{CustomerID: c.ID, Title: "Roof", InternalNotes: "price match Acme"})
	require.NoError(t, err)

	got, err := env.customers.Notes(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "price match Acme", got[0].Content)
	assert.Equal(t, notes.ImportanceMedium, got[0].Importance)
}

func TestFailedCreateDoesNotSyncNotes(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	ctx := context.Background()
	c := env.customer(t)
	env.quotes.newID = func() string { return "q_fixed" }

	_, err := env.quotes.Create(ctx, CreateQuoteRequest{CustomerID: c.ID, Title: "Roof", InternalNotes: "first"})
	require.NoError(t, err)
	_, err = env.quotes.Create(ctx, CreateQuoteRequest{CustomerID: c.ID, Title: "Roof", InternalNotes: "ghost"})
	require.ErrorIs(t, err, shared.ErrDuplicate)

	got, err := env.customers.Notes(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Content)
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	ctx := context.Background()
	q, err := env.quotes.Create(ctx, CreateQuoteRequest{CustomerID: "c_1", Title: "Deck"})
	require.NoError(t, err)

	blank := "   "
	_, err = env.quotes.Update(ctx, q.ID, UpdateQuoteRequest{Title: &blank})
	require.ErrorIs(t, err, shared.ErrValidation)

	stored, err := env.quotes.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deck", stored.Title)
}

func TestCreatePrefillsFromRequest(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	ctx := context.Background()
	c := env.customer(t)
	source, err := env.requests.Create(ctx, requests.CreateRequestRequest{ClientID: c.ID, Title: "Kitchen sink", Details: "Drains slowly"})
	require.NoError(t, err)

	q, err := env.quotes.Create(ctx, CreateQuoteRequest{RequestID: source.ID})
	require.NoError(t, err)
	assert.Equal(t, c.ID, q.CustomerID)
	assert.Equal(t, "Kitchen sink", q.Title)
	assert.Equal(t, "Drains slowly", q.ClientMessage)
	assert.Equal(t, source.ID, q.RequestID)

	q, err = env.quotes.Create(ctx, CreateQuoteRequest{RequestID: source.ID, Title: "Sink repair", ClientMessage: "See attached"})
	require.NoError(t, err)
	assert.Equal(t, "Sink repair", q.Title)
	assert.Equal(t, "See attached", q.ClientMessage)

	_, err = env.quotes.Create(ctx, CreateQuoteRequest{RequestID: "r_missing"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateRejectsOtherInitialStatuses(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	_, err := env.quotes.Create(context.Background(), CreateQuoteRequest{CustomerID: "c_1", Title: "x", Status: StatusApproved})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateRecalculatesAndTransitions(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	ctx := context.Background()
	q, err := env.quotes.Create(ctx, CreateQuoteRequest{
		CustomerID: "c_1",
		Title:      "Deck",
		LineItems:  []LineItemInput{{Name: "Boards", Quantity: 2, UnitPrice: 50}},
	})
	require.NoError(t, err)

	*env.now = t0.Add(time.Hour)
	discount := 10.0
	updated, err := env.quotes.Update(ctx, q.ID, UpdateQuoteRequest{Discount: &discount})
	require.NoError(t, err)
	assert.InDelta(t, 94.05, updated.Total, 1e-9)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	approved := StatusApproved
	_, err = env.quotes.Update(ctx, q.ID, UpdateQuoteRequest{Status: &approved})
	require.ErrorIs(t, err, shared.ErrInvalidTransition)

	for _, st := range []Status{StatusSent, StatusRejected, StatusDraft, StatusSent, StatusApproved} {
		next := st
		_, err = env.quotes.Update(ctx, q.ID, UpdateQuoteRequest{Status: &next})
		require.NoError(t, err, "to %s", st)
	}
	draft := StatusDraft
	_, err = env.quotes.Update(ctx, q.ID, UpdateQuoteRequest{Status: &draft})
	require.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestDocument(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	ctx := context.Background()
	c := env.customer(t)
	q, err := env.quotes.Create(ctx, CreateQuoteRequest{
		CustomerID: c.ID,
		Title:      "Deck",
		LineItems:  []LineItemInput{{Name: "Boards", Quantity: 2, UnitPrice: 50}},
	})
	require.NoError(t, err)

	doc, err := env.quotes.Document(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lee Ortiz", doc.Customer.Name)
	assert.Equal(t, []string{"4 Elm St"}, doc.Customer.Address)
	assert.Equal(t, []string{"Rapid City, SD 57701"}, doc.Business.Address)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, 100.0, doc.Lines[0].Amount)
}
