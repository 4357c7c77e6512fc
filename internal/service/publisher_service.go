package service

import (
	"context"
	"encoding/json"
	"time"

	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/pkg/logger"
	"champ-voting-be/pkg/events"
	pktNats "champ-voting-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Change-bus topics. Every mutating service publishes after a successful
// store write; views reload on delivery. This is the "real-time change
// notification" half of the store contract.
const (
	TopicChampionChanged = "champion.changed"
	TopicSessionChanged  = "session.changed"
)

type IPublisherService interface {
	PublishChampionChanged(ctx context.Context, sessionID string) error
	PublishSessionChanged(ctx context.Context, sessionID string) error
	// RepublishRemote injects an event mirrored from another instance into
	// the local bus, preserving its origin.
	RepublishRemote(topic, sessionID, origin string) error
	InstanceID() string
}

type publisherService struct {
	pubSub     *gochannel.GoChannel
	natsPub    *pktNats.Publisher // nil degrades to single-instance operation
	instanceID string
	logger     logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, natsPub *pktNats.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub:     pubSub,
		natsPub:    natsPub,
		instanceID: watermill.NewUUID(),
		logger:     log,
	}
}

func (s *publisherService) InstanceID() string {
	return s.instanceID
}

// publishLocal marshals the topic's own message type so the champion and
// session payloads cannot drift apart.
func (s *publisherService) publishLocal(topic, sessionID, origin string) error {
	var body interface{}
	switch topic {
	case TopicSessionChanged:
		body = dto.SessionChangedMessage{SessionId: sessionID, Origin: origin}
	default:
		body = dto.ChampionChangedMessage{SessionId: sessionID, Origin: origin}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return s.pubSub.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
}

func (s *publisherService) mirror(ctx context.Context, event events.Event) {
	if s.natsPub == nil {
		return
	}
	if err := s.natsPub.Publish(ctx, event); err != nil {
		// Mirroring is best effort; the local bus already delivered.
		s.logger.Warn("Publisher", "Failed to mirror event to NATS", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *publisherService) PublishChampionChanged(ctx context.Context, sessionID string) error {
	if err := s.publishLocal(TopicChampionChanged, sessionID, s.instanceID); err != nil {
		return err
	}
	s.mirror(ctx, events.ChampionChangedEvent{
		SessionID:  sessionID,
		Origin:     s.instanceID,
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *publisherService) PublishSessionChanged(ctx context.Context, sessionID string) error {
	if err := s.publishLocal(TopicSessionChanged, sessionID, s.instanceID); err != nil {
		return err
	}
	s.mirror(ctx, events.SessionChangedEvent{
		SessionID:  sessionID,
		Origin:     s.instanceID,
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *publisherService) RepublishRemote(topic, sessionID, origin string) error {
	return s.publishLocal(topic, sessionID, origin)
}
