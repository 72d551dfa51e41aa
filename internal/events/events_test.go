package events

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	declared   []string
	kind       string
	durable    bool
	published  []published
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp091.Table) error {
	f.declared = append(f.declared, name)
	f.kind = kind
	f.durable = durable
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "ledger")
	require.NoError(t, err)

	assert.Equal(t, []string{"ledger"}, ch.declared)
	assert.Equal(t, "topic", ch.kind)
	assert.True(t, ch.durable)

	groupID := int64(4)
	event := New(ExpenseCreated, &groupID, 17)
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "ledger", got.exchange)
	assert.Equal(t, "expense.created", got.key)
	assert.Equal(t, event.ID.String(), got.msg.MessageId)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, got.msg.DeliveryMode)

	decoded, err := FromJSON(got.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, ExpenseCreated, decoded.Type)
	require.NotNil(t, decoded.GroupID)
	assert.Equal(t, int64(4), *decoded.GroupID)
	assert.Equal(t, int64(17), decoded.EntityID)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisherError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := newAMQPPublisher(ch, "ledger")
	require.NoError(t, err)

	err = p.Publish(context.Background(), New(SettlementCreated, nil, 1))
	assert.ErrorContains(t, err, "channel closed")
}

func TestMemoryPublisher(t *testing.T) {
	var m Memory
	require.NoError(t, m.Publish(context.Background(), New(MemberAdded, nil, 1)))
	require.NoError(t, m.Publish(context.Background(), New(MemberRemoved, nil, 1)))

	events := m.Events()
	require.Len(t, events, 2)
	assert.Equal(t, MemberAdded, events[0].Type)
	assert.Equal(t, MemberRemoved, events[1].Type)
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), New(UserCreated, nil, 1)))
	assert.NoError(t, p.Close())
}
