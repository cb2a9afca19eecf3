package app

import (
	"github.com/calevents/calevents/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Schedule
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.GetSchedule).Methods("GET")
	r.HandleFunc("/api/schedule/day", deps.ScheduleHandler.SelectDay).Methods("PUT")
	r.HandleFunc("/api/schedule/month/next", deps.ScheduleHandler.NextMonth).Methods("POST")
	r.HandleFunc("/api/schedule/month/previous", deps.ScheduleHandler.PreviousMonth).Methods("POST")

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.Create).Methods("POST")
	r.HandleFunc("/api/event/form", deps.EventHandler.GetFormConfig).Methods("GET")
	r.HandleFunc("/api/event/upcoming", deps.ScheduleHandler.GetUpcoming).Methods("GET")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.Update).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.Delete).Methods("DELETE")

	// Store synchronization
	r.HandleFunc("/api/sync/refresh", deps.SyncHandler.Refresh).Methods("POST")
	r.HandleFunc("/api/sync/operations", deps.SyncHandler.GetOperations).Methods("GET")

	// Identity
	r.HandleFunc("/api/identity", deps.AuthHandler.CurrentIdentity).Methods("GET")
	r.HandleFunc("/api/identity", deps.AuthHandler.SignIn).Methods("PUT")
	r.HandleFunc("/api/identity", deps.AuthHandler.SignOut).Methods("DELETE")
}
