package fixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/forgo/goals/api/internal/model"
)

// GoalCreator is satisfied by every goal repository
type GoalCreator interface {
	Create(ctx context.Context, goal *model.Goal) error
}

// Factory creates goal records through a repository
type Factory struct {
	repo GoalCreator
	seq  atomic.Int64
}

// New creates a fixture factory backed by repo
func New(repo GoalCreator) *Factory {
	return &Factory{repo: repo}
}

// GoalOpts customizes a fixture goal
type GoalOpts struct {
	Text string
	User string
}

// CreateGoal stores a goal for user and fails the test on error.
// Text defaults to a numbered placeholder.
func (f *Factory) CreateGoal(t *testing.T, user string, opts ...func(*GoalOpts)) *model.Goal {
	t.Helper()

	o := GoalOpts{
		Text: fmt.Sprintf("Goal %d", f.seq.Add(1)),
		User: user,
	}
	for _, opt := range opts {
		opt(&o)
	}

	goal := &model.Goal{Text: o.Text, User: o.User}
	if err := f.repo.Create(context.Background(), goal); err != nil {
		t.Fatalf("fixtures: failed to create goal: %v", err)
	}
	return goal
}

// WithText sets the goal text
func WithText(text string) func(*GoalOpts) {
	return func(o *GoalOpts) { o.Text = text }
}
