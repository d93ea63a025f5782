package shared

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDPrefixAndUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewID(PrefixQuote)
		require.True(t, strings.HasPrefix(id, "q_"), id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	assert.NotContains(t, NewID(""), "_")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatMoney(1234.5))
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "-$12.30", FormatMoney(-12.3))
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"john smith":    "John Smith",
		"  mARY   ann ": "Mary Ann",
		"ACME PLUMBING": "Acme Plumbing",
		"":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Capitalize(in), "input %q", in)
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}
	p := PaginationFromQuery(url.Values{"page": {"3"}, "per_page": {"20"}}, len(items))
	page := Paginate(items, p)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, []int{40, 41, 42, 43, 44}, page.Items)

	beyond := Paginate(items, NewPagination(9, 20, len(items)))
	assert.Empty(t, beyond.Items)
}

func TestUserSafeMessage(t *testing.T) {
	err := fmt.Errorf("%w: discount must be >= 0", ErrValidation)
	assert.Equal(t, err.Error(), UserSafeMessage(err))
	assert.Equal(t, "unexpected error", UserSafeMessage(fmt.Errorf("disk on fire")))
}
