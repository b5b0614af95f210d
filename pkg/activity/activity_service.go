package activity

import (
	"context"

	"github.com/zenithweb/zenith/internal/event_bus"
	"github.com/zenithweb/zenith/internal/rest"
	"github.com/zenithweb/zenith/internal/utils"
	"github.com/zenithweb/zenith/pkg/auth"
)

type Service interface {
	List(ctx context.Context) ([]Activity, error)
	Get(ctx context.Context, id int) (Activity, error)
	Create(ctx context.Context, activity Activity) (Activity, error)
	Replace(ctx context.Context, activity Activity) error
	Delete(ctx context.Context, id int) (Activity, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Activity, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Activity, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, activity Activity) (Activity, error) {
	activity.CreationDate = s.clock.Now()

	stored, err := s.repo.Store(ctx, activity)
	if err != nil {
		return Activity{}, err
	}
	s.publish(ctx, event_bus.ActivityCreated, stored.ID)
	return stored, nil
}

func (s *ServiceImpl) Replace(ctx context.Context, activity Activity) error {
	if err := s.repo.Replace(ctx, activity); err != nil {
		return err
	}
	s.publish(ctx, event_bus.ActivityReplaced, activity.ID)
	return nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (Activity, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return Activity{}, err
	}
	s.publish(ctx, event_bus.ActivityDeleted, id)
	return deleted, nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, id int) {
	var subject string
	if identity, err := auth.CurrentIdentity(ctx); err == nil {
		subject = identity.Subject
	}
	s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.EntityChange{
		Entity:    "activity",
		Id:        id,
		Subject:   subject,
		RequestId: rest.RequestId(ctx),
	}))
}
