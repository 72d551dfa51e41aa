// Package events publishes notifications about committed ledger mutations.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type identifies what happened. It doubles as the AMQP routing key.
type Type string

const (
	ExpenseCreated    Type = "expense.created"
	ExpenseDeleted    Type = "expense.deleted"
	SettlementCreated Type = "settlement.created"
	SettlementDeleted Type = "settlement.deleted"
	MemberAdded       Type = "member.added"
	MemberRemoved     Type = "member.removed"
	GroupCreated      Type = "group.created"
	UserCreated       Type = "user.created"
	UserUpdated       Type = "user.updated"
	SettingsUpdated   Type = "settings.updated"
	FriendAdded       Type = "friend.added"
	FriendRemoved     Type = "friend.removed"
)

// Event describes one committed ledger mutation. Consumers fetch the full
// record by EntityID.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       Type      `json:"type"`
	GroupID    *int64    `json:"group_id,omitempty"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New creates an event with a fresh ID, stamped now.
func New(typ Type, groupID *int64, entityID int64) Event {
	return Event{
		ID:         uuid.New(),
		Type:       typ,
		GroupID:    groupID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event.
func FromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher delivers events after the mutation they describe has committed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Memory keeps published events in order. Useful in tests.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func (m *Memory) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *Memory) Close() error { return nil }

// Events returns a copy of everything published so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}
