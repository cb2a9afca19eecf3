package event

import (
	"fmt"
	"time"
)

// WireTimeLayout is the local-naive timestamp format used by the event store
// wire protocol (ISO-8601 without seconds or offset).
const WireTimeLayout = "2006-01-02T15:04"

// wireTimeFallbacks covers timestamps produced by older store variants.
var wireTimeFallbacks = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// WireEvent is the JSON shape exchanged with the event store. Historical
// variants of the store disagree on field names (_id vs id, imgUrl vs
// imageUrl); both are accepted on decode and a single canonical shape is
// produced on encode.
type WireEvent struct {
	ID             string `json:"id,omitempty"`
	LegacyID       string `json:"_id,omitempty"`
	Title          string `json:"eventTitle"`
	ImageURL       string `json:"imageUrl,omitempty"`
	LegacyImageURL string `json:"imgUrl,omitempty"`
	StartAt        string `json:"startDateTime"`
	EndAt          string `json:"endDateTime"`
	Description    string `json:"eventDescription"`
	Color          string `json:"eventColor"`
}

// ToEvent normalizes a wire record into the canonical model.
func (w WireEvent) ToEvent() (Event, error) {
	id := w.ID
	if id == "" {
		id = w.LegacyID
	}
	imageURL := w.ImageURL
	if imageURL == "" {
		imageURL = w.LegacyImageURL
	}

	startAt, err := ParseWireTime(w.StartAt)
	if err != nil {
		return Event{}, fmt.Errorf("invalid startDateTime %q: %w", w.StartAt, err)
	}
	endAt, err := ParseWireTime(w.EndAt)
	if err != nil {
		return Event{}, fmt.Errorf("invalid endDateTime %q: %w", w.EndAt, err)
	}

	return Event{
		ID:          id,
		Title:       w.Title,
		Description: w.Description,
		StartAt:     startAt,
		EndAt:       endAt,
		Color:       w.Color,
		ImageURL:    imageURL,
	}, nil
}

// ToWire converts the canonical model into the canonical wire shape.
func ToWire(e Event) WireEvent {
	return WireEvent{
		ID:          e.ID,
		Title:       e.Title,
		ImageURL:    e.ImageURL,
		StartAt:     e.StartAt.Format(WireTimeLayout),
		EndAt:       e.EndAt.Format(WireTimeLayout),
		Description: e.Description,
		Color:       e.Color,
	}
}

// ParseWireTime parses a local-naive wire timestamp, tolerating the formats
// produced by older store variants.
func ParseWireTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(WireTimeLayout, s, time.Local)
	if err == nil {
		return t, nil
	}
	for _, layout := range wireTimeFallbacks {
		if t, fbErr := time.ParseInLocation(layout, s, time.Local); fbErr == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
