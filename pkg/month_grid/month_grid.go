package month_grid

import (
	"time"
)

// WeekdayHeader holds the single-letter day labels rendered above the grid,
// Sunday first, matching the browser UI.
var WeekdayHeader = [7]string{"S", "M", "T", "W", "T", "F", "S"}

// Header returns the weekday labels rotated so the week starts on firstDay.
func Header(firstDay time.Weekday) [7]string {
	var header [7]string
	for i := 0; i < 7; i++ {
		header[i] = WeekdayHeader[(int(firstDay)+i)%7]
	}
	return header
}

// CalendarDay is a single grid cell. All flags are derived, never stored.
type CalendarDay struct {
	Date               time.Time
	IsToday            bool
	IsSelected         bool
	IsInDisplayedMonth bool
}

// FirstOfMonth returns midnight on the first day of the month containing anchor.
func FirstOfMonth(anchor time.Time) time.Time {
	return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
}

// DaysInMonth returns one midnight-normalized Date per calendar day of the
// month containing anchor, from the 1st through the last day, ascending.
func DaysInMonth(anchor time.Time) []time.Time {
	first := FirstOfMonth(anchor)
	last := first.AddDate(0, 1, -1).Day()

	days := make([]time.Time, 0, last)
	for d := 1; d <= last; d++ {
		days = append(days, time.Date(anchor.Year(), anchor.Month(), d, 0, 0, 0, 0, anchor.Location()))
	}
	return days
}

// ShiftMonth returns the first day of the month delta months away from the
// month containing anchor. Shifting from the first of a month avoids the
// normalization surprises of AddDate on day 29-31.
func ShiftMonth(anchor time.Time, delta int) time.Time {
	return FirstOfMonth(anchor).AddDate(0, delta, 0)
}

// LeadingOffset returns the grid column in which the first day of the month
// containing anchor is placed, for a week starting on firstDay.
func LeadingOffset(anchor time.Time, firstDay time.Weekday) int {
	return (int(FirstOfMonth(anchor).Weekday()) - int(firstDay) + 7) % 7
}

// BuildMonth assembles the grid cells for the month containing anchor,
// deriving the per-day flags from the given selected day and today.
func BuildMonth(anchor, selectedDay, today time.Time) []CalendarDay {
	days := DaysInMonth(anchor)
	cells := make([]CalendarDay, 0, len(days))
	for _, d := range days {
		cells = append(cells, CalendarDay{
			Date:               d,
			IsToday:            sameDay(d, today),
			IsSelected:         sameDay(d, selectedDay),
			IsInDisplayedMonth: d.Year() == anchor.Year() && d.Month() == anchor.Month(),
		})
	}
	return cells
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
