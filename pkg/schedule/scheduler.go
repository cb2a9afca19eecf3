package schedule

import (
	"sync"
	"time"

	"github.com/calevents/calevents/internal/utils"
	"github.com/calevents/calevents/pkg/event"
	"github.com/calevents/calevents/pkg/month_grid"
)

// DayView is one grid cell together with the events bucketed under it.
type DayView struct {
	month_grid.CalendarDay
	Events []event.Event
}

// MonthView is everything the calendar page renders: the header, the grid for
// the displayed month, and the upcoming list.
type MonthView struct {
	Header         [7]string
	DisplayedMonth time.Time
	SelectedDay    time.Time
	LeadingOffset  int
	Days           []DayView
	Upcoming       []event.Event
}

// Scheduler holds the two independent pieces of navigation state: which month
// the grid shows and which day is selected. Selecting a day never moves the
// month and paging the month never moves the selection.
type Scheduler struct {
	mu             sync.Mutex
	clock          utils.Clock
	firstDay       time.Weekday
	displayedMonth time.Time
	selectedDay    time.Time
}

func NewScheduler(clock utils.Clock, firstDay time.Weekday) *Scheduler {
	today := utils.Midnight(clock.Now())
	return &Scheduler{
		clock:          clock,
		firstDay:       firstDay,
		displayedMonth: month_grid.FirstOfMonth(today),
		selectedDay:    today,
	}
}

// SelectDay marks the given day as selected, keeping the displayed month.
func (s *Scheduler) SelectDay(day time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDay = utils.Midnight(day)
}

// NextMonth pages the grid one month forward, keeping the selection.
func (s *Scheduler) NextMonth() {
	s.shiftMonth(1)
}

// PreviousMonth pages the grid one month back, keeping the selection.
func (s *Scheduler) PreviousMonth() {
	s.shiftMonth(-1)
}

func (s *Scheduler) shiftMonth(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayedMonth = month_grid.ShiftMonth(s.displayedMonth, delta)
}

// SelectedDay returns the currently selected day at midnight.
func (s *Scheduler) SelectedDay() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDay
}

// DisplayedMonth returns the first day of the displayed month.
func (s *Scheduler) DisplayedMonth() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayedMonth
}

// MonthView assembles the full calendar page state from the given event
// collection. The grid and buckets are rebuilt from scratch on every call so
// they can never drift from the collection.
func (s *Scheduler) MonthView(events []event.Event) MonthView {
	s.mu.Lock()
	displayedMonth := s.displayedMonth
	selectedDay := s.selectedDay
	s.mu.Unlock()

	now := s.clock.Now()
	cells := month_grid.BuildMonth(displayedMonth, selectedDay, now)
	days := make([]DayView, 0, len(cells))
	for _, cell := range cells {
		days = append(days, DayView{
			CalendarDay: cell,
			Events:      event.EventsOn(events, cell.Date),
		})
	}

	return MonthView{
		Header:         month_grid.Header(s.firstDay),
		DisplayedMonth: displayedMonth,
		SelectedDay:    selectedDay,
		LeadingOffset:  month_grid.LeadingOffset(displayedMonth, s.firstDay),
		Days:           days,
		Upcoming:       event.Upcoming(events, now),
	}
}
