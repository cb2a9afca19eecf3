package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calevents/calevents/internal/config"
	"github.com/calevents/calevents/pkg/event"
	"github.com/calevents/calevents/pkg/event_store"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// CalendarStore implements event_store.Store on top of a single Google
// Calendar. Color and image URL have no native slot in the Calendar API and
// travel in the event's private extended properties.
type CalendarStore struct {
	service    *gcal.Service
	calendarId string
}

const (
	propColor    = "eventColor"
	propImageURL = "imageUrl"
)

func NewCalendarStore(ctx context.Context, cfg config.Google, tokenSource oauth2.TokenSource) (*CalendarStore, error) {
	service, err := gcal.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		err := fmt.Errorf("unable to create Google Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}
	calendarId := cfg.CalendarId
	if calendarId == "" {
		calendarId = "primary"
	}
	return &CalendarStore{service: service, calendarId: calendarId}, nil
}

func (c *CalendarStore) ListEvents(ctx context.Context) ([]event.Event, error) {
	googleEvents, err := c.service.Events.List(c.calendarId).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %v", translateError(err))
		log.Error(err)
		return nil, err
	}

	events := make([]event.Event, 0, len(googleEvents.Items))
	for _, item := range googleEvents.Items {
		e, err := googleEventToEvent(item)
		if err != nil {
			log.Warnf("skipping malformed calendar event %s: %v", item.Id, err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (c *CalendarStore) CreateEvent(ctx context.Context, e event.Event) (*event.Event, error) {
	log.Debugf("Adding event %q to calendar %s", e.Title, c.calendarId)
	result, err := c.service.Events.Insert(c.calendarId, eventToGoogleEvent(e)).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to insert event in Google Calendar: %v", translateError(err))
		log.Error(err)
		return nil, err
	}

	e.ID = result.Id
	return &e, nil
}

func (c *CalendarStore) UpdateEvent(ctx context.Context, e event.Event) (*event.Event, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("cannot update an event without an id")
	}
	result, err := c.service.Events.Update(c.calendarId, e.ID, eventToGoogleEvent(e)).Context(ctx).Do()
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, event_store.ErrNotFound) {
			return nil, translated
		}
		err := fmt.Errorf("unable to update event in Google Calendar: %v", translated)
		log.Error(err)
		return nil, err
	}

	e.ID = result.Id
	return &e, nil
}

func (c *CalendarStore) DeleteEvent(ctx context.Context, id string) error {
	err := c.service.Events.Delete(c.calendarId, id).Context(ctx).Do()
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, event_store.ErrNotFound) {
			return translated
		}
		err := fmt.Errorf("unable to delete event from Google Calendar: %v", translated)
		log.Error(err)
		return err
	}
	return nil
}

func eventToGoogleEvent(e event.Event) *gcal.Event {
	private := map[string]string{}
	if e.Color != "" {
		private[propColor] = e.Color
	}
	if e.ImageURL != "" {
		private[propImageURL] = e.ImageURL
	}
	return &gcal.Event{
		Summary:     e.Title,
		Description: e.Description,
		Start: &gcal.EventDateTime{
			DateTime: e.StartAt.Format(time.RFC3339),
		},
		End: &gcal.EventDateTime{
			DateTime: e.EndAt.Format(time.RFC3339),
		},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: private,
		},
	}
}

func googleEventToEvent(item *gcal.Event) (event.Event, error) {
	if item.Start == nil || item.End == nil {
		return event.Event{}, fmt.Errorf("event %s has no start or end time", item.Id)
	}
	startAt, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return event.Event{}, fmt.Errorf("invalid start time %q: %w", item.Start.DateTime, err)
	}
	endAt, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return event.Event{}, fmt.Errorf("invalid end time %q: %w", item.End.DateTime, err)
	}

	e := event.Event{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		StartAt:     startAt.Local(),
		EndAt:       endAt.Local(),
	}
	if item.ExtendedProperties != nil {
		e.Color = item.ExtendedProperties.Private[propColor]
		e.ImageURL = item.ExtendedProperties.Private[propImageURL]
	}
	return e, nil
}

func translateError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 404, 410:
			return event_store.ErrNotFound
		case 401, 403:
			return event_store.ErrUnauthenticated
		}
	}
	return err
}
