package events

import (
	"context"
	"time"
)

const TypeAccountDeleted = "ACCOUNT_DELETED"

// Event defines the contract for all events published off-box.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ACCOUNT_DELETED").
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

// Publisher sends events to the external bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewAccountDeleted(userId string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeAccountDeleted,
		Data: map[string]interface{}{
			"user_id":     userId,
			"occurred_at": occurredAt,
		},
		OccurredAt: occurredAt,
	}
}
