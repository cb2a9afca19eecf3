package event

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmptyTitle   = errors.New("event title must not be empty")
	ErrTimeOrder    = errors.New("event end time must be after its start time")
	ErrMultiDay     = errors.New("event must start and end on the same calendar day")
	ErrInvalidColor = errors.New("event color must be a palette color or a hex value")
)

// Event is the canonical event record. Timestamps are local-naive: the wire
// format carries no timezone and both sides interpret them in local time.
type Event struct {
	ID          string
	Title       string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	Color       string
	ImageURL    string
}

// PaletteColor is one of the predefined colors offered by the creation form.
type PaletteColor struct {
	Value string
	Label string
}

var Palette = []PaletteColor{
	{Value: "#FF5733", Label: "Red"},
	{Value: "#33FF57", Label: "Green"},
	{Value: "#3357FF", Label: "Blue"},
	{Value: "#FFD700", Label: "Yellow"},
	{Value: "#FF33F6", Label: "Pink"},
	{Value: "#33FFF6", Label: "Cyan"},
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidColor reports whether c is a palette color or a free-form hex value.
func ValidColor(c string) bool {
	for _, p := range Palette {
		if strings.EqualFold(p.Value, c) {
			return true
		}
	}
	return hexColorPattern.MatchString(c)
}

// Validate checks the model invariants: a non-empty title, an end strictly
// after the start, both on the same calendar day, and a recognizable color.
// Multi-day events are rejected here rather than silently truncated.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if !e.EndAt.After(e.StartAt) {
		return ErrTimeOrder
	}
	if !SameDay(e.StartAt, e.EndAt) {
		return ErrMultiDay
	}
	if e.Color != "" && !ValidColor(e.Color) {
		return ErrInvalidColor
	}
	return nil
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
