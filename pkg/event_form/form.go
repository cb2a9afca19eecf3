package event_form

import (
	"fmt"
	"strings"
	"time"

	"github.com/calevents/calevents/internal/utils"
	"github.com/calevents/calevents/pkg/event"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultStartTime = "09:00"
	DefaultEndTime   = "10:00"
)

// DefaultColor is the palette color preselected for new events.
var DefaultColor = event.Palette[0].Value

// ValidationError reports a single rejected form field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every rejected field of one submission so the
// form can mark all of them at once instead of stopping at the first.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, e := range v {
		messages = append(messages, e.Field+": "+e.Message)
	}
	return "invalid form submission: " + strings.Join(messages, "; ")
}

// Values is one form submission. Dates and times arrive as the separate
// strings the form controls produce and are only combined into timestamps
// once the submission validates.
type Values struct {
	Title       string
	StartDate   string
	StartTime   string
	EndTime     string
	Description string
	Color       string
	ImageURL    string
}

// Form prepares and validates event submissions. The time increment controls
// the granularity of the selectable time options.
type Form struct {
	incrementMinutes int
	clock            utils.Clock
}

func New(incrementMinutes int, clock utils.Clock) (*Form, error) {
	if incrementMinutes != 15 && incrementMinutes != 30 {
		return nil, fmt.Errorf("unsupported time increment %d, must be 15 or 30 minutes", incrementMinutes)
	}
	return &Form{incrementMinutes: incrementMinutes, clock: clock}, nil
}

// TimeOptions lists every selectable time of day in form order, from 00:00
// up to the last slot before midnight.
func (f *Form) TimeOptions() []string {
	options := make([]string, 0, 24*60/f.incrementMinutes)
	for minutes := 0; minutes < 24*60; minutes += f.incrementMinutes {
		options = append(options, fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
	}
	return options
}

// Defaults returns the values a freshly opened creation form shows: today's
// date, a 09:00 to 10:00 slot, and the first palette color.
func (f *Form) Defaults() Values {
	return Values{
		StartDate: f.clock.Now().Format(DateLayout),
		StartTime: DefaultStartTime,
		EndTime:   DefaultEndTime,
		Color:     DefaultColor,
	}
}

// ValuesFor prefills the form from an existing event for editing.
func ValuesFor(e event.Event) Values {
	return Values{
		Title:       e.Title,
		StartDate:   e.StartAt.Format(DateLayout),
		StartTime:   e.StartAt.Format(TimeLayout),
		EndTime:     e.EndAt.Format(TimeLayout),
		Description: e.Description,
		Color:       e.Color,
		ImageURL:    e.ImageURL,
	}
}

// Compose validates a submission and assembles the event. Both timestamps are
// built from the single start date, so the result always spans one calendar
// day. The id is empty for new events and carried over when editing.
func (f *Form) Compose(values Values, existingID string) (event.Event, error) {
	var errs ValidationErrors

	if strings.TrimSpace(values.Title) == "" {
		errs = append(errs, ValidationError{Field: "eventTitle", Message: "title is required"})
	}

	startDate, err := time.ParseInLocation(DateLayout, values.StartDate, time.Local)
	if err != nil {
		errs = append(errs, ValidationError{Field: "startDate", Message: "date must use the YYYY-MM-DD format"})
	} else if existingID == "" && startDate.Before(utils.Midnight(f.clock.Now())) {
		// New events cannot be scheduled in the past. Editing an existing
		// past event stays allowed.
		errs = append(errs, ValidationError{Field: "startDate", Message: "date must not be in the past"})
	}

	startMinutes, startErr := minutesOfDay(values.StartTime)
	if startErr != nil {
		errs = append(errs, ValidationError{Field: "startTime", Message: "time must use the HH:mm format"})
	} else if startMinutes%f.incrementMinutes != 0 {
		errs = append(errs, ValidationError{Field: "startTime", Message: fmt.Sprintf("time must align to %d minute slots", f.incrementMinutes)})
	}

	endMinutes, endErr := minutesOfDay(values.EndTime)
	if endErr != nil {
		errs = append(errs, ValidationError{Field: "endTime", Message: "time must use the HH:mm format"})
	} else if endMinutes%f.incrementMinutes != 0 {
		errs = append(errs, ValidationError{Field: "endTime", Message: fmt.Sprintf("time must align to %d minute slots", f.incrementMinutes)})
	}

	if startErr == nil && endErr == nil && endMinutes <= startMinutes {
		errs = append(errs, ValidationError{Field: "endTime", Message: "end time must be after start time"})
	}

	if values.Color != "" && !event.ValidColor(values.Color) {
		errs = append(errs, ValidationError{Field: "eventColor", Message: "color must be a palette color or a #rrggbb value"})
	}

	if len(errs) > 0 {
		return event.Event{}, errs
	}

	color := values.Color
	if color == "" {
		color = DefaultColor
	}

	return event.Event{
		ID:          existingID,
		Title:       strings.TrimSpace(values.Title),
		Description: values.Description,
		StartAt:     startDate.Add(time.Duration(startMinutes) * time.Minute),
		EndAt:       startDate.Add(time.Duration(endMinutes) * time.Minute),
		Color:       color,
		ImageURL:    values.ImageURL,
	}, nil
}

// minutesOfDay parses an HH:mm string into minutes since midnight.
func minutesOfDay(s string) (int, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
