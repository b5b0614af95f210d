package activity

import (
	"context"
	"sort"
	"sync"
)

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	mu     sync.RWMutex
	items  map[int]Activity
	nextId int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{items: make(map[int]Activity), nextId: 1}
}

func (r *StubRepository) Store(ctx context.Context, activity Activity) (Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if activity.ID == 0 {
		activity.ID = r.nextId
		r.nextId++
	} else if _, exists := r.items[activity.ID]; exists {
		return Activity{}, ErrActivityAlreadyExists
	}
	r.items[activity.ID] = activity
	return activity, nil
}

func (r *StubRepository) List(ctx context.Context) ([]Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Activity, 0, len(r.items))
	for _, a := range r.items {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *StubRepository) Get(ctx context.Context, id int) (Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, exists := r.items[id]
	if !exists {
		return Activity{}, ErrActivityNotFound
	}
	return activity, nil
}

func (r *StubRepository) Replace(ctx context.Context, activity Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[activity.ID]; !exists {
		return ErrActivityNotFound
	}
	r.items[activity.ID] = activity
	return nil
}

func (r *StubRepository) Delete(ctx context.Context, id int) (Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, exists := r.items[id]
	if !exists {
		return Activity{}, ErrActivityNotFound
	}
	delete(r.items, id)
	return activity, nil
}
