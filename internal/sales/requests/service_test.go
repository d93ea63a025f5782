package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handydesk/handydesk/internal/notes"
	"github.com/handydesk/handydesk/internal/platform/kv"
	"github.com/handydesk/handydesk/internal/sales/customers"
	"github.com/handydesk/handydesk/internal/shared"
)

var t0 = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	requests  *Service
	customers *customers.Service
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	store := kv.NewMemory()
	customerSvc := customers.NewService(customers.NewRepository(store))
	svc := NewService(NewRepository(store), notes.NewSyncer(customerSvc, notes.Ledger{Now: func() time.Time { return t0 }}))
	svc.clock = func() time.Time { return t0 }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("r_%d", n)
	}
	return testEnv{requests: svc, customers: customerSvc}
}

func (e testEnv) client(t *testing.T) string {
	t.Helper()
	c, err := e.customers.Create(context.Background(), customers.CreateCustomerRequest{FirstName: "dana", LastName: "reyes"})
	require.NoError(t, err)
	return c.ID
}

func TestCreateSyncsNotesToClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.client(t)

	req, err := env.requests.Create(ctx, CreateRequestRequest{
		ClientID:       clientID,
		Title:          "Leaky faucet",
		PreferredTimes: TimeSlots{Evening, Morning},
		InternalNotes:  "  gate code 4412 ",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusNew, req.Status)
	assert.Equal(t, TimeSlots{Morning, Evening}, req.PreferredTimes)

	own := notes.Parse(req.InternalNotes)
	require.Len(t, own, 1)
	assert.Equal(t, "gate code 4412", own[0].Content)
	assert.Equal(t, notes.ImportanceMedium, own[0].Importance)

	mirrored, err := env.customers.Notes(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, mirrored, 1)
	assert.Equal(t, own[0], mirrored[0])
}

func TestCreateWithoutNotesStoresEmptyLedger(t *testing.T) {
	env := newTestEnv(t)
	req, err := env.requests.Create(context.Background(), CreateRequestRequest{ClientID: "c_gone", Title: "Fence"})
	require.NoError(t, err)
	assert.Equal(t, "[]", req.InternalNotes)
	assert.NotNil(t, req.PreferredTimes)
}

func TestAddNoteAppendsToBothLedgers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.client(t)
	req, err := env.requests.Create(ctx, CreateRequestRequest{ClientID: clientID, Title: "Drywall", InternalNotes: "first"})
	require.NoError(t, err)

	note, err := env.requests.AddNote(ctx, req.ID, "bring sander", notes.ImportanceHigh)
	require.NoError(t, err)
	require.NotNil(t, note)

	own, err := env.requests.Notes(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, *note, own[1])

	mirrored, err := env.customers.Notes(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, mirrored, 2)
	assert.Equal(t, *note, mirrored[1])
}

func TestAddNoteForMissingClientIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req, err := env.requests.Create(ctx, CreateRequestRequest{ClientID: "c_gone", Title: "Gutters", InternalNotes: "kept locally"})
	require.NoError(t, err)

	note, err := env.requests.AddNote(ctx, req.ID, "never stored", notes.ImportanceLow)
	require.NoError(t, err)
	assert.Nil(t, note)

	own, err := env.requests.Notes(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "kept locally", own[0].Content)
}

func TestAddNoteUnknownRequest(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.requests.AddNote(context.Background(), "r_missing", "x", notes.ImportanceLow)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req, err := env.requests.Create(ctx, CreateRequestRequest{ClientID: "c_1", Title: "Tile"})
	require.NoError(t, err)

	move := func(s Status) error {
		_, err := env.requests.Update(ctx, req.ID, UpdateRequestRequest{Status: &s})
		return err
	}
	require.NoError(t, move(StatusInProgress))
	require.NoError(t, move(StatusNew))
	require.NoError(t, move(StatusCompleted))
	require.ErrorIs(t, move(StatusInProgress), shared.ErrInvalidTransition)
	require.NoError(t, move(StatusCompleted))
}

func TestTimeSlotsRejectUnknown(t *testing.T) {
	var slots TimeSlots
	err := json.Unmarshal([]byte(`["morning","midnight"]`), &slots)
	require.ErrorIs(t, err, shared.ErrValidation)

	require.NoError(t, json.Unmarshal([]byte(`["Afternoon","any_time","afternoon"]`), &slots))
	assert.Equal(t, TimeSlots{AnyTime, Afternoon}, slots)
	assert.True(t, slots.Has(Afternoon))
	assert.False(t, slots.Has(Evening))
}

func TestFailedCreateLeavesClientLedgerUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	clientID := env.client(t)
	env.requests.newID = func() string { return "r_fixed" }

	_, err := env.requests.Create(ctx, CreateRequestRequest{ClientID: clientID, Title: "Roof", InternalNotes: "ladder"})
	require.NoError(t, err)
	_, err = env.requests.Create(ctx, CreateRequestRequest{ClientID: clientID, Title: "Roof again", InternalNotes: "ghost"})
	require.ErrorIs(t, err, shared.ErrDuplicate)

	mirrored, err := env.customers.Notes(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, mirrored, 1)
	assert.Equal(t, "ladder", mirrored[0].Content)
}

func TestPreferredTimesNormalizedOnWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.requests.Create(ctx, CreateRequestRequest{ClientID: "c_1", Title: "Paint", PreferredTimes: TimeSlots{"midnight"}})
	require.ErrorIs(t, err, shared.ErrValidation)

	req, err := env.requests.Create(ctx, CreateRequestRequest{ClientID: "c_1", Title: "Paint"})
	require.NoError(t, err)

	patch := TimeSlots{Evening, " Afternoon ", Evening}
	updated, err := env.requests.Update(ctx, req.ID, UpdateRequestRequest{PreferredTimes: &patch})
	require.NoError(t, err)
	assert.Equal(t, TimeSlots{Afternoon, Evening}, updated.PreferredTimes)

	bad := TimeSlots{"brunch"}
	_, err = env.requests.Update(ctx, req.ID, UpdateRequestRequest{PreferredTimes: &bad})
	require.ErrorIs(t, err, shared.ErrValidation)
}
