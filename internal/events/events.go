// Package events publishes goal lifecycle notifications.
//
// Publishing is best effort. Callers log failures and never fail the request
// that produced the event.
package events

import (
	"context"
	"time"

	"github.com/forgo/goals/api/internal/model"
)

// Type names a goal lifecycle event
type Type string

const (
	GoalCreated Type = "goal.created"
	GoalUpdated Type = "goal.updated"
	GoalDeleted Type = "goal.deleted"
)

// GoalEvent is the payload published for every goal mutation
type GoalEvent struct {
	Type       Type        `json:"type"`
	GoalID     string      `json:"goal_id"`
	UserID     string      `json:"user_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Goal       *model.Goal `json:"goal,omitempty"`
}

// NewGoalEvent builds an event stamped with the current time
func NewGoalEvent(t Type, goalID, userID string, goal *model.Goal) GoalEvent {
	return GoalEvent{
		Type:       t,
		GoalID:     goalID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Goal:       goal,
	}
}

// Publisher delivers goal events to interested consumers
type Publisher interface {
	Publish(ctx context.Context, event GoalEvent) error
}

// NopPublisher discards every event
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, GoalEvent) error { return nil }
