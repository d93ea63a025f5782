package notes

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 6, 14, 30, 0, 0, time.UTC)

func testLedger() Ledger {
	n := 0
	return Ledger{
		NewID: func() string {
			n++
			return fmt.Sprintf("note-%d", n)
		},
		Now: func() time.Time { return fixedNow },
	}
}

func TestParseNeverFails(t *testing.T) {
	for _, raw := range []string{"", "   ", "null", "not json", `{"id":"x"}`, `"text"`, `[1,2]`, `[{"id":5}]`} {
		got := Parse(raw)
		assert.NotNil(t, got, "input %q", raw)
		assert.Empty(t, got, "input %q", raw)
	}
}

func TestEncodeParseRoundTripPreservesOrder(t *testing.T) {
	ledger := testLedger()
	a, _ := ledger.Format("first", ImportanceLow)
	b, _ := ledger.Format("second", ImportanceHigh)
	raw := Append(Append("", a), b)

	got := Parse(raw)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
	assert.Equal(t, ImportanceHigh, got[1].Importance)
	assert.True(t, got[0].Timestamp.Equal(fixedNow))
	assert.Equal(t, "[]", Encode(nil))
}

func TestAppendToCorruptLedgerStartsFresh(t *testing.T) {
	note, _ := testLedger().Format("hello", ImportanceMedium)
	got := Parse(Append("{broken", note))
	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Content)
}

func TestFormatTrimsAndRejectsBlank(t *testing.T) {
	ledger := testLedger()
	_, ok := ledger.Format(" \n\t ", ImportanceHigh)
	assert.False(t, ok)

	note, ok := ledger.Format("  call back Tuesday  ", "")
	require.True(t, ok)
	assert.Equal(t, "call back Tuesday", note.Content)
	assert.Equal(t, ImportanceMedium, note.Importance)
	assert.Equal(t, "note-1", note.ID)
}

func TestDefaultLedgerIDsAreUnique(t *testing.T) {
	var ledger Ledger
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		n, ok := ledger.Format("x", ImportanceLow)
		require.True(t, ok)
		require.False(t, seen[n.ID])
		seen[n.ID] = true
	}
}

func TestParseImportance(t *testing.T) {
	imp, err := ParseImportance("HIGH")
	require.NoError(t, err)
	assert.Equal(t, ImportanceHigh, imp)
	imp, err = ParseImportance("")
	require.NoError(t, err)
	assert.Equal(t, ImportanceMedium, imp)
	_, err = ParseImportance("urgent")
	require.Error(t, err)
}

type fakeCustomers struct {
	notes map[string]string
	err   error
	calls int
}

func (f *fakeCustomers) UpdateCustomerNotes(_ context.Context, id string, fn func(string) string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	raw, ok := f.notes[id]
	if !ok {
		return false, nil
	}
	f.notes[id] = fn(raw)
	return true, nil
}

func TestSyncToCustomerAppends(t *testing.T) {
	customers := &fakeCustomers{notes: map[string]string{"c_1": ""}}
	syncer := NewSyncer(customers, testLedger())

	note, err := syncer.SyncToCustomer(context.Background(), "c_1", " needs ladder ", ImportanceMedium)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "needs ladder", note.Content)

	_, err = syncer.SyncToCustomer(context.Background(), "c_1", "second", ImportanceLow)
	require.NoError(t, err)

	got := Parse(customers.notes["c_1"])
	require.Len(t, got, 2)
	assert.Equal(t, *note, got[0])
	assert.Equal(t, "second", got[1].Content)
}

func TestSyncToMissingCustomerIsNoOp(t *testing.T) {
	customers := &fakeCustomers{notes: map[string]string{}}
	note, err := NewSyncer(customers, testLedger()).SyncToCustomer(context.Background(), "c_missing", "hello", ImportanceHigh)
	require.NoError(t, err)
	assert.Nil(t, note)
	assert.Empty(t, customers.notes)
}

func TestSyncBlankContentSkipsLookup(t *testing.T) {
	customers := &fakeCustomers{notes: map[string]string{"c_1": ""}}
	note, err := NewSyncer(customers, testLedger()).SyncToCustomer(context.Background(), "c_1", "   ", ImportanceHigh)
	require.NoError(t, err)
	assert.Nil(t, note)
	assert.Zero(t, customers.calls)
}

func TestSyncPropagatesStoreErrors(t *testing.T) {
	customers := &fakeCustomers{err: errors.New("disk full")}
	_, err := NewSyncer(customers, testLedger()).SyncToCustomer(context.Background(), "c_1", "x", ImportanceLow)
	require.Error(t, err)
}

func TestSyncNoteKeepsGivenNote(t *testing.T) {
	customers := &fakeCustomers{notes: map[string]string{"c_1": ""}}
	syncer := NewSyncer(customers, testLedger())
	note, ok := syncer.Ledger().Format("prefab", ImportanceHigh)
	require.True(t, ok)

	found, err := syncer.SyncNote(context.Background(), "c_1", note)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []Note{note}, Parse(customers.notes["c_1"]))

	found, err = syncer.SyncNote(context.Background(), "c_missing", note)
	require.NoError(t, err)
	assert.False(t, found)
}
