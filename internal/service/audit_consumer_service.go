package service

import (
	"context"
	"encoding/json"

	"learner-account-be/internal/deleteaccount"
	"learner-account-be/internal/dto"
	"learner-account-be/internal/model"
	"learner-account-be/internal/pkg/logger"
	"learner-account-be/internal/repository/contract"
	"learner-account-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService records terminal deletion outcomes and announces
// completed deletions on the external bus. Either dependency may be nil.
type auditConsumerService struct {
	subscriber message.Subscriber
	topicName  string
	attempts   contract.DeletionAttemptRepository
	events     events.Publisher
	logger     logger.ILogger
}

func NewAuditConsumerService(
	subscriber message.Subscriber,
	topicName string,
	attempts contract.DeletionAttemptRepository,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &auditConsumerService{
		subscriber: subscriber,
		topicName:  topicName,
		attempts:   attempts,
		events:     eventPublisher,
		logger:     log,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	// invalid payloads are acked so they are not redelivered forever
	defer msg.Ack()

	var payload dto.FlowTransitionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("AuditConsumer", "Failed to unmarshal transition", map[string]interface{}{"error": err.Error()})
		return
	}

	// only the outcome of a submit counts as an attempt
	switch deleteaccount.ActionType(payload.Action) {
	case deleteaccount.ActionSuccess, deleteaccount.ActionFailure:
	default:
		return
	}
	state := deleteaccount.State{
		Status:    deleteaccount.Status(payload.Status),
		ErrorType: deleteaccount.ErrorType(payload.ErrorType),
	}
	if !state.Terminal() {
		return
	}

	if cs.attempts != nil {
		attempt := &model.DeletionAttempt{
			UserId:    payload.UserId,
			Status:    payload.Status,
			CreatedAt: payload.OccurredAt,
		}
		if payload.ErrorType != "" {
			errorType := payload.ErrorType
			attempt.ErrorType = &errorType
		}
		if err := cs.attempts.Create(ctx, attempt); err != nil {
			cs.logger.Error("AuditConsumer", "Failed to record deletion attempt", map[string]interface{}{
				"user_id": payload.UserId,
				"error":   err.Error(),
			})
		}
	}

	if state.Status == deleteaccount.StatusDeleted && cs.events != nil {
		if err := cs.events.Publish(ctx, events.NewAccountDeleted(payload.UserId, payload.OccurredAt)); err != nil {
			cs.logger.Warn("AuditConsumer", "Failed to publish ACCOUNT_DELETED event", map[string]interface{}{
				"user_id": payload.UserId,
				"error":   err.Error(),
			})
		}
	}

	cs.logger.Info("AuditConsumer", "Deletion flow reached a terminal state", map[string]interface{}{
		"user_id":    payload.UserId,
		"status":     payload.Status,
		"error_type": payload.ErrorType,
	})
}
