// FILE: internal/service/activity_service.go
package service

import (
	"context"

	"ai-learning-assistant-be/internal/constant"
	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IActivityService records domain events in the activity log.
type IActivityService interface {
	Consume(ctx context.Context, subscriber message.Subscriber, topic string) error
	Handle(ctx context.Context, event events.Event) error
}

type activityService struct {
	logger logger.ILogger
}

func NewActivityService(log logger.ILogger) IActivityService {
	return &activityService{logger: log}
}

// Consume reads the in-process bus until ctx is done.
func (s *activityService) Consume(ctx context.Context, subscriber message.Subscriber, topic string) error {
	messages, err := subscriber.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *activityService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Decode(msg.Payload)
	if err != nil {
		s.logger.Warn(constant.ModuleActivity, "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	if err := s.Handle(ctx, event); err != nil {
		msg.Nack()
		return
	}
	msg.Ack()
}

func (s *activityService) Handle(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"event":       event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}
	s.logger.Info(constant.ModuleActivity, "Activity recorded", details)
	return nil
}
