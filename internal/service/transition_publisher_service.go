package service

import (
	"encoding/json"
	"fmt"

	"learner-account-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const FlowTransitionTopic = "DELETE_ACCOUNT_TRANSITIONS"

type ITransitionPublisherService interface {
	Publish(msg dto.FlowTransitionMessage) error
}

type transitionPublisherService struct {
	publisher message.Publisher
	topicName string
}

func NewTransitionPublisherService(topicName string, publisher message.Publisher) ITransitionPublisherService {
	return &transitionPublisherService{
		publisher: publisher,
		topicName: topicName,
	}
}

func (s *transitionPublisherService) Publish(msg dto.FlowTransitionMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal transition: %w", err)
	}
	return s.publisher.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
}
