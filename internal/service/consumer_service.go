package service

import (
	"context"
	"encoding/json"

	"ai-intake-be/internal/pkg/logger"
	"ai-intake-be/internal/pkg/mailer"
	"ai-intake-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IConsumerService drains the risk-alert topic and sends the clinician an
// early warning before the intake finishes. Alert delivery is best effort:
// failures are logged and never reach the subject's turn.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topic      string
	mail       mailer.IEmailService
	recipient  string
	log        logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topic string,
	mail mailer.IEmailService,
	recipient string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topic:      topic,
		mail:       mail,
		recipient:  recipient,
		log:        log,
	}
}

func (s *consumerService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		var event events.RiskAlertEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			s.log.Warn("risk-alert", "Dropping malformed alert event", map[string]interface{}{
				"error": err.Error(),
			})
			msg.Ack()
			continue
		}

		if err := s.mail.SendRiskAlert(s.recipient, event.SessionID, event.FlaggedAt); err != nil {
			s.log.Error("risk-alert", "Failed to send early-warning email", map[string]interface{}{
				"session_id": event.SessionID,
				"error":      err.Error(),
			})
		} else {
			s.log.Info("risk-alert", "Early-warning email sent", map[string]interface{}{
				"session_id": event.SessionID,
			})
		}
		msg.Ack()
	}
	return nil
}
