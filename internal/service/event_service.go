package service

import (
	"context"

	"ticketera/internal/cache"
	"ticketera/internal/model"
	"ticketera/internal/repository"
	apperrors "ticketera/pkg/app_errors"
	"ticketera/pkg/logger"

	"go.uber.org/zap"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	Get(ctx context.Context, id int) (*model.Event, error)
	Create(ctx context.Context, req model.CreateEventRequest, actor *model.User) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams, actor *model.User) (*model.Event, error)
	Delete(ctx context.Context, id int, actor *model.User) error
	// Recommend returns events sharing the seed event's category, excluding
	// the seed itself. Without a seed it returns every event. A plain
	// same-category filter, not a ranking.
	Recommend(ctx context.Context, eventID *int) ([]*model.Event, error)
}

type EventServiceImpl struct {
	repo      repository.EventRepository
	inventory cache.EventInventory
}

func NewEventService(repo repository.EventRepository, inventory cache.EventInventory) EventService {
	return &EventServiceImpl{repo: repo, inventory: inventory}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventServiceImpl) Get(ctx context.Context, id int) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventServiceImpl) Create(ctx context.Context, req model.CreateEventRequest, actor *model.User) (*model.Event, error) {
	if actor.Role != model.RoleOrganizer {
		return nil, apperrors.ErrForbidden
	}

	event := &model.Event{
		Name:             req.Name,
		Description:      req.Description,
		Date:             req.Date,
		Location:         req.Location,
		Price:            req.Price,
		TotalTickets:     req.TotalTickets,
		RemainingTickets: req.TotalTickets,
		Category:         req.Category,
		OwnerID:          actor.ID,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	// The purchase path falls back to the database guard if this fails.
	if err := s.inventory.WarmUp(ctx, created.ID, created.RemainingTickets); err != nil {
		logger.WithComponent("event_service").Warn("failed to warm up inventory",
			zap.Int("event_id", created.ID), zap.Error(err))
	}

	return created, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, id int, params model.UpdateEventParams, actor *model.User) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role != model.RoleOrganizer || event.OwnerID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	return s.repo.Update(ctx, id, params)
}

func (s *EventServiceImpl) Delete(ctx context.Context, id int, actor *model.User) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role != model.RoleOrganizer || event.OwnerID != actor.ID {
		return apperrors.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

func (s *EventServiceImpl) Recommend(ctx context.Context, eventID *int) ([]*model.Event, error) {
	if eventID == nil {
		return s.repo.List(ctx)
	}

	seed, err := s.repo.FindByID(ctx, *eventID)
	if err != nil {
		return nil, err
	}

	if seed.Category == nil {
		return []*model.Event{}, nil
	}

	return s.repo.ListByCategory(ctx, *seed.Category, seed.ID)
}
