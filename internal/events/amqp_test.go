package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/goals/api/internal/model"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	published []publishedMessage
	err       error
	closed    bool
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.published = append(c.published, publishedMessage{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestAMQPPublisher_Publish_RoutesByEventType(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "goals"}

	goal := &model.Goal{ID: "goal:abc", Text: "Learn X", User: "user-a"}
	err := p.Publish(context.Background(), NewGoalEvent(GoalCreated, goal.ID, goal.User, goal))
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "goals", got.exchange)
	assert.Equal(t, "goal.created", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var decoded GoalEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, GoalCreated, decoded.Type)
	assert.Equal(t, "goal:abc", decoded.GoalID)
	assert.Equal(t, "user-a", decoded.UserID)
	require.NotNil(t, decoded.Goal)
	assert.Equal(t, "Learn X", decoded.Goal.Text)
}

func TestAMQPPublisher_Publish_WrapsChannelError(t *testing.T) {
	t.Parallel()

	boom := errors.New("channel closed")
	p := &AMQPPublisher{ch: &fakeChannel{err: boom}, exchange: "goals"}

	err := p.Publish(context.Background(), NewGoalEvent(GoalDeleted, "goal:abc", "user-a", nil))
	assert.ErrorIs(t, err, boom)
}

func TestAMQPPublisher_Close_ClosesChannel(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch}
	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNopPublisher(t *testing.T) {
	t.Parallel()

	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), NewGoalEvent(GoalUpdated, "goal:a", "u", nil)))
}
