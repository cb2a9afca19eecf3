package month_grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDaysInMonth(t *testing.T) {
	t.Run("should list all days of a leap February", func(t *testing.T) {
		// when
		days := DaysInMonth(date(2024, time.February, 10))

		// then
		require.Len(t, days, 29)
		assert.Equal(t, date(2024, time.February, 1), days[0])
		assert.Equal(t, date(2024, time.February, 29), days[28])
	})

	t.Run("should list all days of a non-leap February", func(t *testing.T) {
		days := DaysInMonth(date(2023, time.February, 1))
		assert.Len(t, days, 28)
	})

	t.Run("should normalize days to midnight", func(t *testing.T) {
		// given an anchor in the middle of the day
		anchor := time.Date(2024, time.March, 15, 13, 45, 12, 0, time.Local)

		// when
		days := DaysInMonth(anchor)

		// then
		for _, d := range days {
			assert.Equal(t, 0, d.Hour())
			assert.Equal(t, 0, d.Minute())
		}
	})
}

func TestLeadingOffset(t *testing.T) {
	tests := []struct {
		name     string
		anchor   time.Time
		firstDay time.Weekday
		want     int
	}{
		{"March 2024 starts on a Friday", date(2024, time.March, 1), time.Sunday, 5},
		{"September 2024 starts on a Sunday", date(2024, time.September, 1), time.Sunday, 0},
		{"April 2024 starts on a Monday", date(2024, time.April, 1), time.Sunday, 1},
		{"July 2024 starts on a Monday, Monday-first week", date(2024, time.July, 1), time.Monday, 0},
		{"September 2024 starts on a Sunday, Monday-first week", date(2024, time.September, 1), time.Monday, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LeadingOffset(tt.anchor, tt.firstDay))
		})
	}
}

func TestShiftMonth(t *testing.T) {
	t.Run("should move forward from a day 31 anchor without skipping a month", func(t *testing.T) {
		// given January 31st, where a plain AddDate would land in March
		anchor := date(2024, time.January, 31)

		// when
		next := ShiftMonth(anchor, 1)

		// then
		assert.Equal(t, date(2024, time.February, 1), next)
	})

	t.Run("should roll over the year boundary in both directions", func(t *testing.T) {
		assert.Equal(t, date(2025, time.January, 1), ShiftMonth(date(2024, time.December, 15), 1))
		assert.Equal(t, date(2023, time.December, 1), ShiftMonth(date(2024, time.January, 15), -1))
	})
}

func TestBuildMonth(t *testing.T) {
	t.Run("should flag today and the selected day", func(t *testing.T) {
		// given
		today := date(2024, time.March, 8)
		selected := date(2024, time.March, 21)

		// when
		cells := BuildMonth(date(2024, time.March, 1), selected, today)

		// then
		require.Len(t, cells, 31)
		for _, cell := range cells {
			assert.Equal(t, cell.Date.Day() == 8, cell.IsToday, "day %d", cell.Date.Day())
			assert.Equal(t, cell.Date.Day() == 21, cell.IsSelected, "day %d", cell.Date.Day())
			assert.True(t, cell.IsInDisplayedMonth)
		}
	})

	t.Run("should not flag today or selection from another month", func(t *testing.T) {
		// given today and the selection both outside the displayed month
		today := date(2024, time.April, 8)
		selected := date(2024, time.February, 8)

		// when
		cells := BuildMonth(date(2024, time.March, 1), selected, today)

		// then
		for _, cell := range cells {
			assert.False(t, cell.IsToday)
			assert.False(t, cell.IsSelected)
		}
	})
}

func TestHeader(t *testing.T) {
	t.Run("should keep Sunday first by default", func(t *testing.T) {
		assert.Equal(t, [7]string{"S", "M", "T", "W", "T", "F", "S"}, Header(time.Sunday))
	})

	t.Run("should rotate for a Monday-first week", func(t *testing.T) {
		assert.Equal(t, [7]string{"M", "T", "W", "T", "F", "S", "S"}, Header(time.Monday))
	})
}
