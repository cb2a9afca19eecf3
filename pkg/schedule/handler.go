package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/calevents/calevents/pkg/event"
	"github.com/calevents/calevents/pkg/event_sync"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID               string `json:"id"`
	EventTitle       string `json:"eventTitle"`
	StartDateTime    string `json:"startDateTime"`
	EndDateTime      string `json:"endDateTime"`
	EventDescription string `json:"eventDescription,omitempty"`
	EventColor       string `json:"eventColor,omitempty"`
	ImageURL         string `json:"imageUrl,omitempty"`
}

type DayViewDTO struct {
	Date       string     `json:"date"`
	IsToday    bool       `json:"isToday"`
	IsSelected bool       `json:"isSelected"`
	Events     []EventDTO `json:"events"`
}

type MonthViewDTO struct {
	Header        [7]string    `json:"header"`
	Month         string       `json:"month"`
	SelectedDay   string       `json:"selectedDay"`
	LeadingOffset int          `json:"leadingOffset"`
	Days          []DayViewDTO `json:"days"`
	Upcoming      []EventDTO   `json:"upcoming"`
}

type SelectDayDTO struct {
	Date string `json:"date"`
}

type ScheduleHandler struct {
	scheduler *Scheduler
	sync      *event_sync.Service
}

func NewScheduleHandler(scheduler *Scheduler, sync *event_sync.Service) *ScheduleHandler {
	return &ScheduleHandler{scheduler, sync}
}

// GetSchedule returns the current month view.
func (handler *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	handler.writeView(w)
}

// SelectDay moves the selection to the submitted date and returns the
// refreshed view. The displayed month stays where it is.
func (handler *ScheduleHandler) SelectDay(w http.ResponseWriter, r *http.Request) {
	var selectDayDTO SelectDayDTO
	if err := json.NewDecoder(r.Body).Decode(&selectDayDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	day, err := time.ParseInLocation("2006-01-02", selectDayDTO.Date, time.Local)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	log.Debugf("Selecting day %s", selectDayDTO.Date)
	handler.scheduler.SelectDay(day)
	handler.writeView(w)
}

// NextMonth pages the displayed month forward and returns the refreshed view.
func (handler *ScheduleHandler) NextMonth(w http.ResponseWriter, r *http.Request) {
	handler.scheduler.NextMonth()
	handler.writeView(w)
}

// PreviousMonth pages the displayed month back and returns the refreshed view.
func (handler *ScheduleHandler) PreviousMonth(w http.ResponseWriter, r *http.Request) {
	handler.scheduler.PreviousMonth()
	handler.writeView(w)
}

// GetUpcoming returns the events starting after now, soonest first.
func (handler *ScheduleHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	view := handler.scheduler.MonthView(handler.sync.Snapshot())
	upcoming := make([]EventDTO, 0, len(view.Upcoming))
	for _, e := range view.Upcoming {
		upcoming = append(upcoming, eventToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(upcoming); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ScheduleHandler) writeView(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")

	view := handler.scheduler.MonthView(handler.sync.Snapshot())

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(viewToDTO(view)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func viewToDTO(view MonthView) MonthViewDTO {
	days := make([]DayViewDTO, 0, len(view.Days))
	for _, day := range view.Days {
		events := make([]EventDTO, 0, len(day.Events))
		for _, e := range day.Events {
			events = append(events, eventToDTO(e))
		}
		days = append(days, DayViewDTO{
			Date:       day.Date.Format("2006-01-02"),
			IsToday:    day.IsToday,
			IsSelected: day.IsSelected,
			Events:     events,
		})
	}

	upcoming := make([]EventDTO, 0, len(view.Upcoming))
	for _, e := range view.Upcoming {
		upcoming = append(upcoming, eventToDTO(e))
	}

	return MonthViewDTO{
		Header:        view.Header,
		Month:         view.DisplayedMonth.Format("2006-01"),
		SelectedDay:   view.SelectedDay.Format("2006-01-02"),
		LeadingOffset: view.LeadingOffset,
		Days:          days,
		Upcoming:      upcoming,
	}
}

func eventToDTO(e event.Event) EventDTO {
	return EventDTO{
		ID:               e.ID,
		EventTitle:       e.Title,
		StartDateTime:    e.StartAt.Format(event.WireTimeLayout),
		EndDateTime:      e.EndAt.Format(event.WireTimeLayout),
		EventDescription: e.Description,
		EventColor:       e.Color,
		ImageURL:         e.ImageURL,
	}
}
