package event_store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/calevents/calevents/pkg/event"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Client talks to the REST event store. All requests carry the bearer token
// supplied by the oauth2 token source.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, tokenSource oauth2.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: tokenSource},
		},
	}
}

// envelope is the response wrapper used by the store on list and single-event
// endpoints.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) ListEvents(ctx context.Context) ([]event.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, fmt.Errorf("event store request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return nil, fmt.Errorf("failed to decode event list: %w", err)
	}
	var wires []event.WireEvent
	if err := json.Unmarshal(env.Data, &wires); err != nil {
		return nil, fmt.Errorf("failed to decode event list: %w", err)
	}

	events := make([]event.Event, 0, len(wires))
	for _, w := range wires {
		e, err := w.ToEvent()
		if err != nil {
			log.Warnf("skipping malformed event from store: %v", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, e event.Event) (*event.Event, error) {
	created, err := c.sendEvent(ctx, http.MethodPost, c.baseURL+"/events/", e, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) UpdateEvent(ctx context.Context, e event.Event) (*event.Event, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("cannot update an event without an id")
	}
	endpoint := c.baseURL + "/events/" + url.PathEscape(e.ID)
	updated, err := c.sendEvent(ctx, http.MethodPut, endpoint, e, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	endpoint := c.baseURL + "/events/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return fmt.Errorf("event store request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthenticated
	default:
		err := fmt.Errorf("event store returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return err
	}
}

func (c *Client) sendEvent(ctx context.Context, method, endpoint string, e event.Event, wantStatus int) (*event.Event, error) {
	body, err := json.Marshal(event.ToWire(e))
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, fmt.Errorf("event store request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, wantStatus); err != nil {
		return nil, err
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return nil, fmt.Errorf("failed to decode stored event: %w", err)
	}
	var wire event.WireEvent
	if err := json.Unmarshal(env.Data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode stored event: %w", err)
	}
	stored, err := wire.ToEvent()
	if err != nil {
		return nil, fmt.Errorf("store returned malformed event: %w", err)
	}
	return &stored, nil
}

func checkStatus(resp *http.Response, want int) error {
	switch resp.StatusCode {
	case want:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthenticated
	default:
		err := fmt.Errorf("event store returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return err
	}
}
