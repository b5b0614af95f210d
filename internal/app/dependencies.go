package app

import (
	"database/sql"

	log "github.com/sirupsen/logrus"
	"github.com/zenithweb/zenith/internal/config"
	"github.com/zenithweb/zenith/internal/event_bus"
	"github.com/zenithweb/zenith/internal/utils"
	"github.com/zenithweb/zenith/pkg/activity"
	"github.com/zenithweb/zenith/pkg/auth"
	"github.com/zenithweb/zenith/pkg/event"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Authenticator auth.Authenticator
	Bus           *event_bus.EventBus
	Clock         utils.Clock

	ActivityRepo    activity.Repository
	ActivityService activity.Service
	ActivityHandler *activity.Handler

	EventRepo    event.EventRepository
	EventService event.EventService
	EventHandler *event.EventHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Authenticator = auth.NewIntrospectionAuthenticator(cfg.Auth)
	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.ActivityRepo = activity.NewActivityRepo(db)
	deps.ActivityService = activity.NewService(deps.ActivityRepo, deps.Bus, deps.Clock)
	deps.ActivityHandler = activity.NewHandler(deps.ActivityService)

	deps.EventRepo = event.NewEventRepo(db)
	deps.EventService = event.NewEventService(deps.EventRepo, deps.ActivityRepo, deps.Bus, deps.Clock)
	deps.EventHandler = event.NewEventHandler(deps.EventService)

	subscribeAuditLog(deps.Bus)

	return deps
}

// subscribeAuditLog records every successful mutation with the acting subject
// and the request correlation id.
func subscribeAuditLog(bus *event_bus.EventBus) {
	types := []event_bus.EventType{
		event_bus.EventCreated, event_bus.EventReplaced, event_bus.EventDeleted,
		event_bus.ActivityCreated, event_bus.ActivityReplaced, event_bus.ActivityDeleted,
	}
	for _, t := range types {
		bus.Subscribe(t, func(e event_bus.Event) error {
			change, ok := e.Data.(event_bus.EntityChange)
			if !ok {
				return nil
			}
			log.WithFields(log.Fields{
				"entity":    change.Entity,
				"id":        change.Id,
				"subject":   change.Subject,
				"requestId": change.RequestId,
			}).Infof("audit: %s", e.Type)
			return nil
		})
	}
}
