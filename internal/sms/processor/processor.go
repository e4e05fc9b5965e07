package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blastsms/internal/gateway"
	"blastsms/internal/metrics"
	"blastsms/internal/observability"
	"blastsms/internal/phone"
	"blastsms/internal/store"

	"github.com/google/uuid"
)

// Gateway is the outbound half of an SMS provider
type Gateway interface {
	Send(ctx context.Context, msg gateway.Outbound) (gateway.Receipt, error)
}

// MirrorStore defines the database operations used to mirror a sent message into the inbox
type MirrorStore interface {
	UpsertConversationByPhone(ctx context.Context, phone string) (store.Conversation, error)
	LinkConversationContact(ctx context.Context, conversationID uuid.UUID) error
	InsertMessage(ctx context.Context, params store.InsertMessageParams) (bool, error)
	UpdateConversationLastMessage(ctx context.Context, conversationID uuid.UUID, content string, at time.Time) error
}

var (
	ErrInvalidInput         = errors.New("phone and message are required")
	ErrGatewayNotConfigured = errors.New("sms gateway is not configured")
)

// SendResult is the outcome of one send. A gateway rejection is not an error:
// Success is false and Error carries the gateway's text.
type SendResult struct {
	Success bool   `json:"success"`
	TextID  string `json:"textId,omitempty"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

type SMSProcessor struct {
	gateway   Gateway
	store     MirrorStore
	fromPhone string
	provider  string
	logger    *observability.Logger
}

// New builds the processor. store may be nil, in which case sent messages are
// not mirrored into the inbox.
func New(gw Gateway, store MirrorStore, fromPhone, provider string, logger *observability.Logger) SMSProcessor {
	return SMSProcessor{
		gateway:   gw,
		store:     store,
		fromPhone: fromPhone,
		provider:  provider,
		logger:    logger,
	}
}

// SendSMS sends one message immediately. On acceptance the message is mirrored
// into the store; mirror failures are logged and never change the result.
func (p *SMSProcessor) SendSMS(ctx context.Context, to, message string) (SendResult, error) {
	normalized := phone.Normalize(to)
	if normalized == "" || strings.TrimSpace(message) == "" {
		metrics.ObserveSend(p.provider, metrics.OutcomeInvalid)
		return SendResult{}, ErrInvalidInput
	}
	if p.gateway == nil || p.fromPhone == "" {
		metrics.ObserveSend(p.provider, metrics.OutcomeNotConfigured)
		return SendResult{}, ErrGatewayNotConfigured
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "to", Value: normalized},
		observability.Field{Key: "provider", Value: p.provider},
	)

	receipt, err := p.gateway.Send(ctx, gateway.Outbound{
		From:    p.fromPhone,
		To:      normalized,
		Content: message,
	})
	if err != nil {
		metrics.ObserveSend(p.provider, metrics.OutcomeError)
		p.logger.Error(ctx, "failed to send sms", err)
		return SendResult{}, fmt.Errorf("failed to send sms: %w", err)
	}

	if !receipt.Accepted() {
		metrics.ObserveSend(p.provider, metrics.OutcomeRejected)
		p.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "gateway_error", Value: receipt.Error}), "gateway rejected sms")
		return SendResult{Success: false, Error: receipt.Error}, nil
	}

	metrics.ObserveSend(p.provider, metrics.OutcomeDelivered)
	p.mirror(ctx, normalized, message, receipt)

	return SendResult{Success: true, TextID: receipt.ID, Status: receipt.Status}, nil
}

// mirror writes the sent message into the inbox tables
func (p *SMSProcessor) mirror(ctx context.Context, to, message string, receipt gateway.Receipt) {
	if p.store == nil {
		return
	}
	if err := p.writeMirror(ctx, to, message, receipt); err != nil {
		metrics.ObserveMirrorFailure()
		p.logger.Error(ctx, "failed to mirror sent sms", err)
	}
}

func (p *SMSProcessor) writeMirror(ctx context.Context, to, message string, receipt gateway.Receipt) error {
	conversation, err := p.store.UpsertConversationByPhone(ctx, to)
	if err != nil {
		return err
	}

	if err := p.store.LinkConversationContact(ctx, conversation.ID); err != nil {
		return err
	}

	status := receipt.Status
	if status == "" {
		status = store.DefaultMessageStatus
	}
	now := time.Now().UTC()
	if _, err := p.store.InsertMessage(ctx, store.InsertMessageParams{
		ConversationID:    conversation.ID,
		ProviderMessageID: receipt.ID,
		Direction:         store.DirectionOutbound,
		Content:           message,
		Status:            status,
		CreatedAt:         now,
	}); err != nil {
		return err
	}

	return p.store.UpdateConversationLastMessage(ctx, conversation.ID, message, now)
}
