package app

import (
	"context"
	"fmt"
	"time"

	"github.com/calevents/calevents/internal/config"
	"github.com/calevents/calevents/internal/event_bus"
	"github.com/calevents/calevents/internal/utils"
	"github.com/calevents/calevents/pkg/auth"
	"github.com/calevents/calevents/pkg/event_form"
	"github.com/calevents/calevents/pkg/event_store"
	"github.com/calevents/calevents/pkg/event_sync"
	"github.com/calevents/calevents/pkg/google"
	"github.com/calevents/calevents/pkg/schedule"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	AuthProvider *auth.StaticProvider
	AuthHandler  *auth.Handler

	Store       event_store.Store
	SyncService *event_sync.Service
	SyncHandler *event_sync.SyncHandler

	Form         *event_form.Form
	EventHandler *event_form.EventHandler

	Scheduler       *schedule.Scheduler
	ScheduleHandler *schedule.ScheduleHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	var initialIdentity *auth.Identity
	if cfg.Store.Token != "" {
		initialIdentity = &auth.Identity{Subject: "local", DisplayName: "Local User"}
	}
	deps.AuthProvider = auth.NewStaticProvider(deps.Bus, initialIdentity, cfg.Store.Token)
	deps.AuthHandler = auth.NewHandler(deps.AuthProvider)

	switch cfg.Store.Provider {
	case "rest":
		deps.Store = event_store.NewClient(cfg.Store.BaseURL, deps.AuthProvider.TokenSource())
	case "google":
		store, err := google.NewCalendarStore(ctx, cfg.Google, deps.AuthProvider.TokenSource())
		if err != nil {
			return nil, err
		}
		deps.Store = store
	default:
		return nil, fmt.Errorf("unknown store provider %q, must be rest or google", cfg.Store.Provider)
	}

	deps.SyncService = event_sync.NewService(deps.Store, deps.Bus)
	deps.SyncHandler = event_sync.NewSyncHandler(deps.SyncService)

	form, err := event_form.New(cfg.Form.TimeIncrementMinutes, deps.Clock)
	if err != nil {
		return nil, err
	}
	deps.Form = form
	deps.EventHandler = event_form.NewEventHandler(deps.Form, deps.SyncService)

	deps.Scheduler = schedule.NewScheduler(deps.Clock, time.Weekday(cfg.Week.FirstDay))
	deps.ScheduleHandler = schedule.NewScheduleHandler(deps.Scheduler, deps.SyncService)

	// The collection follows identity changes announced on the bus.
	event_bus.SubscribeTyped[event_bus.IdentityChanged](deps.Bus, event_bus.TopicIdentityChanged,
		func(e event_bus.EventT[event_bus.IdentityChanged]) error {
			if e.Data.Subject == "" {
				deps.SyncService.SetIdentity(e.Context(), nil)
				return nil
			}
			deps.SyncService.SetIdentity(e.Context(), &auth.Identity{
				Subject:     e.Data.Subject,
				DisplayName: e.Data.DisplayName,
			})
			return nil
		})

	if initialIdentity != nil {
		deps.SyncService.SetIdentity(ctx, initialIdentity)
	}

	return deps, nil
}
