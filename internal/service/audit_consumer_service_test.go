package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"learner-account-be/internal/dto"
	"learner-account-be/internal/model"
	"learner-account-be/internal/pkg/logger"
	"learner-account-be/internal/repository/specification"
	"learner-account-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAttempts struct {
	mu       sync.Mutex
	attempts []model.DeletionAttempt
}

func (r *memAttempts) Create(ctx context.Context, attempt *model.DeletionAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, *attempt)
	return nil
}

func (r *memAttempts) FindByUserId(ctx context.Context, userId string, limit int) ([]model.DeletionAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.DeletionAttempt(nil), r.attempts...), nil
}

func (r *memAttempts) FindAll(ctx context.Context, specs ...specification.Specification) ([]model.DeletionAttempt, error) {
	return r.FindByUserId(ctx, "", 0)
}

func (r *memAttempts) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(r.len()), nil
}

func (r *memAttempts) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attempts)
}

type memEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *memEvents) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *memEvents) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestAuditConsumer_RecordsTerminalTransitions(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	attempts := &memAttempts{}
	bus := &memEvents{}
	consumer := NewAuditConsumerService(pubSub, FlowTransitionTopic, attempts, bus, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewTransitionPublisherService(FlowTransitionTopic, pubSub)
	now := time.Now()
	for _, msg := range []dto.FlowTransitionMessage{
		{UserId: "42", Action: "DELETE_ACCOUNT__CONFIRMATION", Status: "confirming", OccurredAt: now},
		{UserId: "42", Action: "DELETE_ACCOUNT__FAILURE", Status: "failed", ErrorType: "server", OccurredAt: now},
		{UserId: "42", Action: "DELETE_ACCOUNT__SUCCESS", Status: "deleted", OccurredAt: now},
		// a later reset or request leaves the status terminal but is not a new outcome
		{UserId: "42", Action: "DELETE_ACCOUNT__RESET", Status: "deleted", OccurredAt: now},
		{UserId: "42", Action: "DELETE_ACCOUNT", Status: "deleted", OccurredAt: now},
	} {
		require.NoError(t, publisher.Publish(msg))
	}

	assert.Eventually(t, func() bool { return attempts.len() == 2 && bus.len() == 1 }, time.Second, 10*time.Millisecond)
	// give stray records a chance to show up
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, attempts.len())
	assert.Equal(t, 1, bus.len())

	recorded, _ := attempts.FindByUserId(context.Background(), "42", 10)
	byStatus := map[string]model.DeletionAttempt{}
	for _, a := range recorded {
		byStatus[a.Status] = a
	}
	require.Contains(t, byStatus, "failed")
	require.NotNil(t, byStatus["failed"].ErrorType)
	assert.Equal(t, "server", *byStatus["failed"].ErrorType)
	assert.Nil(t, byStatus["deleted"].ErrorType)
	assert.Equal(t, events.TypeAccountDeleted, bus.events[0].EventType())
}
