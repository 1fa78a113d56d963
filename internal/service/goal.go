package service

import (
	"context"
	"log/slog"

	"github.com/forgo/goals/api/internal/events"
	"github.com/forgo/goals/api/internal/model"
)

// GoalRepository defines the interface for goal storage
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ListByUser(ctx context.Context, userID string) ([]*model.Goal, error)
	GetByID(ctx context.Context, id string) (*model.Goal, error)
	UpdateOwned(ctx context.Context, id, userID string, req *model.UpdateGoalRequest) (*model.Goal, error)
	DeleteOwned(ctx context.Context, id, userID string) (bool, error)
}

// GoalServiceConfig holds dependencies for the goal service
type GoalServiceConfig struct {
	GoalRepo  GoalRepository
	Publisher events.Publisher
}

// GoalService handles goal business logic
type GoalService struct {
	goalRepo  GoalRepository
	publisher events.Publisher
}

// NewGoalService creates a new goal service
func NewGoalService(cfg GoalServiceConfig) *GoalService {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &GoalService{
		goalRepo:  cfg.GoalRepo,
		publisher: publisher,
	}
}

// List returns every goal owned by the caller
func (s *GoalService) List(ctx context.Context, userID string) ([]*model.Goal, error) {
	if userID == "" {
		return nil, ErrUserNotFound
	}

	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []*model.Goal{}
	}
	return goals, nil
}

// Create stores a new goal owned by the caller
func (s *GoalService) Create(ctx context.Context, userID string, req *model.CreateGoalRequest) (*model.Goal, error) {
	if !req.HasText() {
		return nil, ErrTextRequired
	}
	if userID == "" {
		return nil, ErrUserNotFound
	}

	goal := &model.Goal{
		Text: *req.Text,
		User: userID,
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	slog.Info("goal created", slog.String("goal_id", goal.ID), slog.String("user_id", userID))
	s.publish(ctx, events.NewGoalEvent(events.GoalCreated, goal.ID, userID, goal))
	return goal, nil
}

// Update applies the allowlisted fields of req to a goal the caller owns
func (s *GoalService) Update(ctx context.Context, id, userID string, req *model.UpdateGoalRequest) (*model.Goal, error) {
	if userID == "" {
		return nil, s.authorizeOwner(ctx, id, userID)
	}

	goal, err := s.goalRepo.UpdateOwned(ctx, id, userID, req)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, s.authorizeOwner(ctx, id, userID)
	}

	slog.Info("goal updated", slog.String("goal_id", goal.ID), slog.String("user_id", userID))
	s.publish(ctx, events.NewGoalEvent(events.GoalUpdated, goal.ID, userID, goal))
	return goal, nil
}

// Delete removes a goal the caller owns and returns its id
func (s *GoalService) Delete(ctx context.Context, id, userID string) (string, error) {
	if userID == "" {
		return "", s.authorizeOwner(ctx, id, userID)
	}

	deleted, err := s.goalRepo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", s.authorizeOwner(ctx, id, userID)
	}

	slog.Info("goal deleted", slog.String("goal_id", id), slog.String("user_id", userID))
	s.publish(ctx, events.NewGoalEvent(events.GoalDeleted, id, userID, nil))
	return id, nil
}

// authorizeOwner explains why the caller may not modify the goal.
// Checks run in order: existence, identity, ownership.
func (s *GoalService) authorizeOwner(ctx context.Context, id, userID string) error {
	goal, err := s.goalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if goal == nil {
		return ErrGoalNotFound
	}
	if userID == "" {
		return ErrUserNotFound
	}
	if goal.User != userID {
		return ErrNotAuthorized
	}
	// Owned but the conditional write missed: the goal vanished in between
	return ErrGoalNotFound
}

func (s *GoalService) publish(ctx context.Context, event events.GoalEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish goal event",
			slog.String("type", string(event.Type)),
			slog.String("goal_id", event.GoalID),
			slog.String("error", err.Error()),
		)
	}
}
