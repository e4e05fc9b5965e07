// Package events publishes send-pipeline and inbox events to Kafka.
package events

//go:generate go run go.uber.org/mock/mockgen@latest -source=publisher.go -destination=mocks_test.go -package=events

import (
	"context"
	"fmt"
	"time"

	"blastsms/internal/appstate"
	"blastsms/internal/kafka"
	"blastsms/internal/observability"
)

const (
	EventQueueMessageUpdated = "queue.message.updated"
	EventCampaignCompleted   = "campaign.completed"
	EventInboundReceived     = "inbox.message.received"
)

// Producer writes one message to Kafka
type Producer interface {
	ProduceMessage(ctx context.Context, msg kafka.Message) error
}

// Publisher turns domain changes into Kafka messages. A Publisher without a
// producer drops every event, which is how it runs when no brokers are set.
type Publisher struct {
	producer Producer
	logger   *observability.Logger
	now      func() time.Time
}

func NewPublisher(producer Producer, logger *observability.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type QueueMessageUpdated struct {
	MessageID      string                 `json:"message_id"`
	CampaignID     string                 `json:"campaign_id"`
	Recipient      string                 `json:"recipient"`
	Status         appstate.MessageStatus `json:"status"`
	Error          string                 `json:"error,omitempty"`
	TextID         string                 `json:"text_id,omitempty"`
	DeliveryStatus string                 `json:"delivery_status,omitempty"`
	OccurredAt     time.Time              `json:"occurred_at"`
}

type CampaignCompleted struct {
	CampaignID     string    `json:"campaign_id"`
	Name           string    `json:"name"`
	RecipientCount int       `json:"recipient_count"`
	Delivered      int       `json:"delivered"`
	Failed         int       `json:"failed"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type InboundReceived struct {
	Phone      string    `json:"phone"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishQueueMessageUpdated publishes a queue.message.updated event keyed by campaign
func (p *Publisher) PublishQueueMessageUpdated(ctx context.Context, msg appstate.QueueMessage) error {
	return p.publish(ctx, EventQueueMessageUpdated, kafka.Message{
		Topic: kafka.TopicQueueMessageUpdated,
		Key:   msg.CampaignID,
		Value: QueueMessageUpdated{
			MessageID:      msg.ID,
			CampaignID:     msg.CampaignID,
			Recipient:      msg.Recipient,
			Status:         msg.Status,
			Error:          msg.Error,
			TextID:         msg.TextID,
			DeliveryStatus: msg.DeliveryStatus,
			OccurredAt:     msg.Timestamp,
		},
	})
}

// PublishCampaignCompleted publishes a campaign.completed event
func (p *Publisher) PublishCampaignCompleted(ctx context.Context, campaign appstate.Campaign) error {
	return p.publish(ctx, EventCampaignCompleted, kafka.Message{
		Topic: kafka.TopicCampaignCompleted,
		Key:   campaign.ID,
		Value: CampaignCompleted{
			CampaignID:     campaign.ID,
			Name:           campaign.Name,
			RecipientCount: campaign.RecipientCount,
			Delivered:      campaign.Delivered,
			Failed:         campaign.Failed,
			OccurredAt:     p.now(),
		},
	})
}

// PublishInboundReceived publishes an inbox.message.received event keyed by phone
func (p *Publisher) PublishInboundReceived(ctx context.Context, phone string, count int) error {
	return p.publish(ctx, EventInboundReceived, kafka.Message{
		Topic: kafka.TopicInboundReceived,
		Key:   phone,
		Value: InboundReceived{Phone: phone, Count: count, OccurredAt: p.now()},
	})
}

func (p *Publisher) publish(ctx context.Context, eventType string, msg kafka.Message) error {
	if p.producer == nil {
		return nil
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "event_type", Value: eventType})
	msg.Headers = map[string]string{"event_type": eventType}
	msg.Timestamp = p.now()

	if err := p.producer.ProduceMessage(ctx, msg); err != nil {
		p.logger.Error(ctx, "failed to publish event", err)
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}
