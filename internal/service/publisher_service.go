package service

import (
	"context"
	"encoding/json"

	"ai-intake-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IPublisherService interface {
	PublishRiskAlert(ctx context.Context, event events.RiskAlertEvent) error
}

type publisherService struct {
	topic     string
	publisher message.Publisher
}

func NewPublisherService(topic string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topic:     topic,
		publisher: publisher,
	}
}

func (s *publisherService) PublishRiskAlert(ctx context.Context, event events.RiskAlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	return s.publisher.Publish(s.topic, msg)
}
