package event

import (
	"context"
	"sort"
	"sync"
	"time"
)

// StubEventRepository is an in-memory EventRepository for tests. It needs an
// activity lookup to emulate the SQL join in ListEventsWithActivity.
type StubEventRepository struct {
	mu         sync.RWMutex
	items      map[int]Event
	nextId     int
	Activities ActivityProvider
}

func NewStubEventRepository(activities ActivityProvider) *StubEventRepository {
	return &StubEventRepository{items: make(map[int]Event), nextId: 1, Activities: activities}
}

func (r *StubEventRepository) StoreEvent(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == 0 {
		event.ID = r.nextId
		r.nextId++
	} else if _, exists := r.items[event.ID]; exists {
		return Event{}, ErrEventAlreadyExists
	}
	event.Activity = nil
	r.items[event.ID] = event
	return event, nil
}

func (r *StubEventRepository) GetEvent(ctx context.Context, id int) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.items[id]
	if !exists {
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

func (r *StubEventRepository) ListEventsWithActivity(ctx context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0, len(r.items))
	for _, event := range r.items {
		a, err := r.Activities.Get(ctx, event.ActivityID)
		if err != nil {
			return nil, err
		}
		event.Activity = &a
		result = append(result, event)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *StubEventRepository) ListActiveEventsStartingBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Event
	for _, event := range r.items {
		if event.IsActive && !event.From.Before(from) && event.From.Before(to) {
			result = append(result, event)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].From.Before(result[j].From) })
	return result, nil
}

func (r *StubEventRepository) ReplaceEvent(ctx context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[event.ID]; !exists {
		return ErrEventNotFound
	}
	event.Activity = nil
	r.items[event.ID] = event
	return nil
}

func (r *StubEventRepository) DeleteEvent(ctx context.Context, id int) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, exists := r.items[id]
	if !exists {
		return Event{}, ErrEventNotFound
	}
	delete(r.items, id)
	return event, nil
}
