package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"time"

	"blastsms/internal/appstate"
	"blastsms/internal/metrics"
	"blastsms/internal/observability"
	smsprocessor "blastsms/internal/sms/processor"
)

// QueueState is the slice of the application state a drain needs
type QueueState interface {
	QueuedMessages() []appstate.QueueMessage
	UpdateMessageStatus(ctx context.Context, id string, status appstate.MessageStatus, update appstate.MessageUpdate) (appstate.StatusUpdate, error)
}

// Sender sends one message and mirrors it into the inbox
type Sender interface {
	SendSMS(ctx context.Context, phone, message string) (smsprocessor.SendResult, error)
}

// EventPublisher announces queue progress
type EventPublisher interface {
	PublishQueueMessageUpdated(ctx context.Context, msg appstate.QueueMessage) error
	PublishCampaignCompleted(ctx context.Context, campaign appstate.Campaign) error
}

// Failure texts recorded on failed queue messages.
const (
	ErrorTextNetwork       = "Network error"
	ErrorTextSendFailed    = "Send failed"
	ErrorTextMissingConfig = "Missing configuration"
)

// DrainResult summarizes one pass over the queue.
type DrainResult struct {
	Processed int  `json:"processed"`
	Delivered int  `json:"delivered"`
	Failed    int  `json:"failed"`
	Skipped   int  `json:"skipped"`
	Stopped   bool `json:"stopped"`
}

type QueueProcessor struct {
	state     QueueState
	sender    Sender
	publisher EventPublisher
	logger    *observability.Logger
}

func New(state QueueState, sender Sender, publisher EventPublisher, logger *observability.Logger) QueueProcessor {
	return QueueProcessor{
		state:     state,
		sender:    sender,
		publisher: publisher,
		logger:    logger,
	}
}

// Drain sends every message that is queued when the drain starts, one at a
// time and in queue order. The token and ctx are checked before each message;
// once either is done the remaining messages stay queued.
func (p *QueueProcessor) Drain(ctx context.Context, token *Token) DrainResult {
	start := time.Now()
	defer func() { metrics.ObserveDrain(time.Since(start)) }()

	queued := p.state.QueuedMessages()
	p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "queued", Value: len(queued)}), "starting queue drain")

	var result DrainResult
	for _, msg := range queued {
		if token.Cancelled() || ctx.Err() != nil {
			result.Stopped = true
			break
		}

		msgCtx := observability.WithFields(ctx,
			observability.Field{Key: "queue_message_id", Value: msg.ID},
			observability.Field{Key: "campaign_id", Value: msg.CampaignID},
		)

		if _, err := p.state.UpdateMessageStatus(msgCtx, msg.ID, appstate.MessageStatusSending, appstate.MessageUpdate{}); err != nil {
			// removed by a clear or a campaign deletion since the snapshot
			p.logger.Warn(msgCtx, "queue message disappeared before sending")
			result.Skipped++
			continue
		}

		status, update := p.send(msgCtx, msg)
		result.Processed++
		if status == appstate.MessageStatusDelivered {
			result.Delivered++
		} else {
			result.Failed++
		}
		metrics.ObserveQueueMessage(string(status))

		changed, err := p.state.UpdateMessageStatus(msgCtx, msg.ID, status, update)
		if err != nil {
			if errors.Is(err, appstate.ErrMessageNotFound) {
				p.logger.Warn(msgCtx, "queue message removed while sending")
				continue
			}
			p.logger.Error(msgCtx, "failed to record queue message outcome", err)
			continue
		}
		p.publish(msgCtx, changed)
	}

	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "processed", Value: result.Processed},
		observability.Field{Key: "delivered", Value: result.Delivered},
		observability.Field{Key: "failed", Value: result.Failed},
		observability.Field{Key: "stopped", Value: result.Stopped},
	), "queue drain finished")
	return result
}

// send maps the sender outcome onto a final queue status
func (p *QueueProcessor) send(ctx context.Context, msg appstate.QueueMessage) (appstate.MessageStatus, appstate.MessageUpdate) {
	result, err := p.sender.SendSMS(ctx, msg.Recipient, msg.MessageText)
	switch {
	case errors.Is(err, smsprocessor.ErrInvalidInput):
		return appstate.MessageStatusFailed, appstate.MessageUpdate{Error: err.Error()}
	case errors.Is(err, smsprocessor.ErrGatewayNotConfigured):
		return appstate.MessageStatusFailed, appstate.MessageUpdate{Error: ErrorTextMissingConfig}
	case err != nil:
		p.logger.Error(ctx, "failed to send queue message", err)
		return appstate.MessageStatusFailed, appstate.MessageUpdate{Error: ErrorTextNetwork}
	}

	success := result.Success
	update := appstate.MessageUpdate{
		APISuccess:     &success,
		TextID:         result.TextID,
		DeliveryStatus: result.Status,
	}
	if result.Success {
		return appstate.MessageStatusDelivered, update
	}
	update.Error = result.Error
	if update.Error == "" {
		update.Error = ErrorTextSendFailed
	}
	return appstate.MessageStatusFailed, update
}

// publish emits progress events. Failures are logged and never stop the drain.
func (p *QueueProcessor) publish(ctx context.Context, changed appstate.StatusUpdate) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.PublishQueueMessageUpdated(ctx, changed.Message); err != nil {
		p.logger.Error(ctx, "failed to publish queue message update", err)
	}
	if changed.CampaignCompleted {
		if err := p.publisher.PublishCampaignCompleted(ctx, changed.Campaign); err != nil {
			p.logger.Error(ctx, "failed to publish campaign completion", err)
		}
	}
}
