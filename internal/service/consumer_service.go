package service

import (
	"context"
	"fmt"

	"champ-voting-be/internal/pkg/logger"
	"champ-voting-be/pkg/events"
	pktNats "champ-voting-be/pkg/nats"
)

// IConsumerService mirrors change events published by other instances into
// the local bus, so every instance's projections converge on the same
// store state. Without NATS the process simply runs single-instance.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber       *pktNats.Subscriber
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewConsumerService(subscriber *pktNats.Subscriber, publisherService IPublisherService, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber:       subscriber,
		publisherService: publisherService,
		logger:           log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	if cs.subscriber == nil {
		cs.logger.Warn("Consumer", "NATS not configured, running single-instance", nil)
		return nil
	}

	instance := cs.publisherService.InstanceID()

	handler := func(topic string) pktNats.EventHandler {
		return func(ctx context.Context, event events.Event) error {
			payload := event.Payload()
			sessionID, _ := payload["session_id"].(string)
			origin, _ := payload["origin"].(string)
			if sessionID == "" {
				return nil
			}
			// Our own events already went through the local bus.
			if origin == instance {
				return nil
			}
			return cs.publisherService.RepublishRemote(topic, sessionID, origin)
		}
	}

	championSubject := "events." + events.TypeChampionChanged
	sessionSubject := "events." + events.TypeSessionChanged

	if err := cs.subscriber.Subscribe(championSubject, "champion-"+instance, handler(TopicChampionChanged)); err != nil {
		return fmt.Errorf("subscribe %s: %w", championSubject, err)
	}
	if err := cs.subscriber.Subscribe(sessionSubject, "session-"+instance, handler(TopicSessionChanged)); err != nil {
		return fmt.Errorf("subscribe %s: %w", sessionSubject, err)
	}

	cs.logger.Info("Consumer", "Mirroring remote change events", map[string]interface{}{
		"instance": instance,
	})
	return nil
}
