package event_form

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calevents/calevents/internal/event_bus"
	"github.com/calevents/calevents/pkg/event_store"
	"github.com/calevents/calevents/pkg/event_sync"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*EventHandler, *event_store.StubStore, *event_sync.Service) {
	store := event_store.NewStubStore()
	sync := event_sync.NewService(store, event_bus.NewEventBus())
	handler := NewEventHandler(newForm(t, 15), sync)
	return handler, store, sync
}

func newRouter(handler *EventHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/event", handler.Create).Methods("POST")
	r.HandleFunc("/api/event/form", handler.GetFormConfig).Methods("GET")
	r.HandleFunc("/api/event/{eventId}", handler.Update).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", handler.Delete).Methods("DELETE")
	return r
}

func postJSON(t *testing.T, router *mux.Router, method, path string, payload any) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestEventHandler_Create(t *testing.T) {
	submission := SubmissionDTO{
		EventTitle: "Team standup",
		StartDate:  "2024-03-15",
		StartTime:  "09:00",
		EndTime:    "09:30",
		EventColor: "#33FF57",
	}

	t.Run("should create an event from a valid submission", func(t *testing.T) {
		handler, store, _ := setupHandlerTest(t)
		router := newRouter(handler)

		// when
		recorder := postJSON(t, router, http.MethodPost, "/api/event", submission)

		// then
		require.Equal(t, http.StatusCreated, recorder.Code)
		var created EventDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Team standup", created.EventTitle)
		assert.Equal(t, "2024-03-15T09:00", created.StartDateTime)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		handler, store, _ := setupHandlerTest(t)
		router := newRouter(handler)

		invalid := submission
		invalid.EventTitle = ""
		invalid.EndTime = "08:00"

		// when
		recorder := postJSON(t, router, http.MethodPost, "/api/event", invalid)

		// then
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		var response struct {
			Errors ValidationErrors `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		require.Len(t, response.Errors, 2)
		assert.Equal(t, "eventTitle", response.Errors[0].Field)
		assert.Equal(t, "endTime", response.Errors[1].Field)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("should return 502 when the store rejects the event", func(t *testing.T) {
		handler, store, _ := setupHandlerTest(t)
		store.FailWith("create", errors.New("store unavailable"))
		router := newRouter(handler)

		recorder := postJSON(t, router, http.MethodPost, "/api/event", submission)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})
}

func TestEventHandler_Update(t *testing.T) {
	t.Run("should update an existing event", func(t *testing.T) {
		handler, _, _ := setupHandlerTest(t)
		router := newRouter(handler)
		recorder := postJSON(t, router, http.MethodPost, "/api/event", SubmissionDTO{
			EventTitle: "Standup", StartDate: "2024-03-15", StartTime: "09:00", EndTime: "09:30",
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
		var created EventDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&created))

		// when
		recorder = postJSON(t, router, http.MethodPut, "/api/event/"+created.ID, SubmissionDTO{
			EventTitle: "Retro", StartDate: "2024-03-15", StartTime: "10:00", EndTime: "11:00",
		})

		// then
		require.Equal(t, http.StatusOK, recorder.Code)
		var updated EventDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&updated))
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Retro", updated.EventTitle)
		assert.Equal(t, "2024-03-15T10:00", updated.StartDateTime)
	})

	t.Run("should return 404 for an unknown event", func(t *testing.T) {
		handler, _, _ := setupHandlerTest(t)
		router := newRouter(handler)

		recorder := postJSON(t, router, http.MethodPut, "/api/event/unknown", SubmissionDTO{
			EventTitle: "Ghost", StartDate: "2024-03-15", StartTime: "09:00", EndTime: "09:30",
		})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestEventHandler_Delete(t *testing.T) {
	t.Run("should delete an existing event", func(t *testing.T) {
		handler, store, _ := setupHandlerTest(t)
		router := newRouter(handler)
		recorder := postJSON(t, router, http.MethodPost, "/api/event", SubmissionDTO{
			EventTitle: "Standup", StartDate: "2024-03-15", StartTime: "09:00", EndTime: "09:30",
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
		var created EventDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&created))

		// when
		req := httptest.NewRequest(http.MethodDelete, "/api/event/"+created.ID, nil)
		deleteRecorder := httptest.NewRecorder()
		router.ServeHTTP(deleteRecorder, req)

		// then
		assert.Equal(t, http.StatusNoContent, deleteRecorder.Code)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("should treat a missing event as already deleted", func(t *testing.T) {
		handler, _, _ := setupHandlerTest(t)
		router := newRouter(handler)

		req := httptest.NewRequest(http.MethodDelete, "/api/event/already-gone", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}

func TestEventHandler_GetFormConfig(t *testing.T) {
	t.Run("should return defaults, time options, and the palette", func(t *testing.T) {
		handler, _, _ := setupHandlerTest(t)
		router := newRouter(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/event/form", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		var config FormConfigDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&config))
		assert.Equal(t, "09:00", config.Defaults.StartTime)
		assert.Equal(t, "10:00", config.Defaults.EndTime)
		assert.Len(t, config.TimeOptions, 96)
		assert.Len(t, config.Colors, 6)
		assert.Equal(t, "Red", config.Colors[0].Label)
	})
}
