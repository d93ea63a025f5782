package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// bruteForce walks day by day, the definition the closed form must agree with.
func bruteForce(start, end time.Time) int {
	n := 0
	for d := civilDate(start); !d.After(civilDate(end)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			n++
		}
	}
	return n
}

func TestWorkingDaysExamples(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"monday to saturday", "2024-01-01", "2024-01-06", 6},
		{"full week including sunday", "2024-01-01", "2024-01-07", 6},
		{"single sunday", "2024-01-07", "2024-01-07", 0},
		{"single weekday", "2024-01-03", "2024-01-03", 1},
		{"two weeks", "2024-01-01", "2024-01-14", 12},
		{"end before start", "2024-01-10", "2024-01-01", 0},
		{"leap day span", "2024-02-26", "2024-03-03", 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WorkingDays(date(tc.start), date(tc.end)))
		})
	}
}

func TestWorkingDaysMatchesDayByDayCount(t *testing.T) {
	base := date("2023-12-20")
	for offset := 0; offset < 14; offset++ {
		start := base.AddDate(0, 0, offset)
		for span := 0; span < 40; span++ {
			end := start.AddDate(0, 0, span)
			require.Equal(t, bruteForce(start, end), WorkingDays(start, end), "%s..%s", start.Format(DateLayout), end.Format(DateLayout))
		}
	}
}

func TestWorkingDaysIgnoresTimeOfDayAndDST(t *testing.T) {
	loc, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 2024-03-10 is the spring-forward date in Denver.
	start := time.Date(2024, 3, 9, 23, 0, 0, 0, loc)
	end := time.Date(2024, 3, 11, 1, 0, 0, 0, loc)
	assert.Equal(t, 2, WorkingDays(start, end))
}

func TestWorkingDaysBetween(t *testing.T) {
	n, err := WorkingDaysBetween("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, 27, n)

	_, err = WorkingDaysBetween("01/02/2024", "2024-01-31")
	require.Error(t, err)
}
