package event_form

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calevents/calevents/pkg/event"
	"github.com/calevents/calevents/pkg/event_store"
	"github.com/calevents/calevents/pkg/event_sync"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SubmissionDTO mirrors the form fields as the frontend submits them.
type SubmissionDTO struct {
	EventTitle       string `json:"eventTitle"`
	StartDate        string `json:"startDate"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	EventDescription string `json:"eventDescription,omitempty"`
	EventColor       string `json:"eventColor,omitempty"`
	ImageURL         string `json:"imageUrl,omitempty"`
}

type EventDTO struct {
	ID               string `json:"id"`
	EventTitle       string `json:"eventTitle"`
	StartDateTime    string `json:"startDateTime"`
	EndDateTime      string `json:"endDateTime"`
	EventDescription string `json:"eventDescription,omitempty"`
	EventColor       string `json:"eventColor,omitempty"`
	ImageURL         string `json:"imageUrl,omitempty"`
}

type ColorDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FormConfigDTO struct {
	Defaults    SubmissionDTO `json:"defaults"`
	TimeOptions []string      `json:"timeOptions"`
	Colors      []ColorDTO    `json:"colors"`
}

type EventHandler struct {
	form *Form
	sync *event_sync.Service
}

func NewEventHandler(form *Form, sync *event_sync.Service) *EventHandler {
	return &EventHandler{form, sync}
}

// GetFormConfig returns the defaults, selectable times, and color palette a
// freshly opened creation form needs.
func (handler *EventHandler) GetFormConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	defaults := handler.form.Defaults()
	colors := make([]ColorDTO, 0, len(event.Palette))
	for _, c := range event.Palette {
		colors = append(colors, ColorDTO{Value: c.Value, Label: c.Label})
	}

	config := FormConfigDTO{
		Defaults:    valuesToDTO(defaults),
		TimeOptions: handler.form.TimeOptions(),
		Colors:      colors,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(config); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new event from form submission")
	w.Header().Set("Content-Type", "application/json")

	var submission SubmissionDTO
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	composed, err := handler.form.Compose(dtoToValues(submission), "")
	if err != nil {
		writeFormError(w, err)
		return
	}

	created, err := handler.sync.Create(r.Context(), composed)
	if err != nil {
		http.Error(w, err.Error(), storeErrorStatus(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventId := mux.Vars(r)["eventId"]
	if eventId == "" {
		http.Error(w, "Missing event id", http.StatusBadRequest)
		return
	}

	var submission SubmissionDTO
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	composed, err := handler.form.Compose(dtoToValues(submission), eventId)
	if err != nil {
		writeFormError(w, err)
		return
	}

	updated, err := handler.sync.Update(r.Context(), composed)
	if err != nil {
		if errors.Is(err, event_sync.ErrNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), storeErrorStatus(err))
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(*updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventId := mux.Vars(r)["eventId"]
	if eventId == "" {
		http.Error(w, "Missing event id", http.StatusBadRequest)
		return
	}

	if err := handler.sync.Remove(r.Context(), eventId); err != nil {
		http.Error(w, err.Error(), storeErrorStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeFormError distinguishes per-field validation failures, which the form
// renders inline, from everything else.
func writeFormError(w http.ResponseWriter, err error) {
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		w.WriteHeader(http.StatusBadRequest)
		if encodeErr := json.NewEncoder(w).Encode(map[string]ValidationErrors{"errors": validationErrs}); encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// storeErrorStatus maps store failures onto HTTP statuses. An expired or
// missing token means the user must sign in again, everything else is the
// upstream store misbehaving.
func storeErrorStatus(err error) int {
	if errors.Is(err, event_store.ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}

func dtoToValues(dto SubmissionDTO) Values {
	return Values{
		Title:       dto.EventTitle,
		StartDate:   dto.StartDate,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		Description: dto.EventDescription,
		Color:       dto.EventColor,
		ImageURL:    dto.ImageURL,
	}
}

func valuesToDTO(values Values) SubmissionDTO {
	return SubmissionDTO{
		EventTitle:       values.Title,
		StartDate:        values.StartDate,
		StartTime:        values.StartTime,
		EndTime:          values.EndTime,
		EventDescription: values.Description,
		EventColor:       values.Color,
		ImageURL:         values.ImageURL,
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
