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
	smsprocessor "blastsms/internal/sms/processor"
	"blastsms/internal/store"

	"github.com/google/uuid"
)

// Gateway lists remote threads and their messages
type Gateway interface {
	ListThreads(ctx context.Context, owner string) ([]gateway.Thread, error)
	ListMessages(ctx context.Context, owner, contact string, skip, limit int) ([]gateway.Message, error)
}

// InboxStore defines the database operations required by InboxProcessor
type InboxStore interface {
	UpsertConversationByPhone(ctx context.Context, phone string) (store.Conversation, error)
	LinkConversationContact(ctx context.Context, conversationID uuid.UUID) error
	InsertMessage(ctx context.Context, params store.InsertMessageParams) (bool, error)
	GetLatestMessage(ctx context.Context, conversationID uuid.UUID) (store.Message, error)
	UpdateConversationLastMessage(ctx context.Context, conversationID uuid.UUID, content string, at time.Time) error
	IncrementConversationUnread(ctx context.Context, conversationID uuid.UUID, by int) error
	ListConversations(ctx context.Context) ([]store.Conversation, error)
	GetConversationByID(ctx context.Context, id uuid.UUID) (store.Conversation, error)
	ListMessagesByConversation(ctx context.Context, conversationID uuid.UUID) ([]store.Message, error)
	MarkConversationRead(ctx context.Context, conversationID uuid.UUID) error
}

// Replier sends a reply into a conversation
type Replier interface {
	SendSMS(ctx context.Context, phone, message string) (smsprocessor.SendResult, error)
}

// EventPublisher announces newly received inbound messages
type EventPublisher interface {
	PublishInboundReceived(ctx context.Context, phone string, count int) error
}

// MessagePageSize bounds how many recent messages are fetched per thread.
const MessagePageSize = 20

var (
	ErrNotConfigured        = errors.New("inbox is not configured")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyReply           = errors.New("message is required")
)

// Settings carries the owning number and the names of any inbox settings
// that are absent.
type Settings struct {
	OwnerPhone string
	Missing    []string
}

type PollResult struct {
	NewMessages   int `json:"newMessages"`
	ThreadsFailed int `json:"threadsFailed"`
}

type ConversationThread struct {
	Conversation store.Conversation `json:"conversation"`
	Messages     []store.Message    `json:"messages"`
}

type InboxProcessor struct {
	gateway   Gateway
	store     InboxStore
	replier   Replier
	publisher EventPublisher
	settings  Settings
	logger    *observability.Logger
}

func New(gw Gateway, store InboxStore, replier Replier, publisher EventPublisher, settings Settings, logger *observability.Logger) InboxProcessor {
	return InboxProcessor{
		gateway:   gw,
		store:     store,
		replier:   replier,
		publisher: publisher,
		settings:  settings,
		logger:    logger,
	}
}

// MissingSettings names the inbox settings that are not configured.
func (p *InboxProcessor) MissingSettings() []string {
	return append([]string(nil), p.settings.Missing...)
}

func (p *InboxProcessor) configured() bool {
	return len(p.settings.Missing) == 0 && p.gateway != nil && p.store != nil
}

// Poll pulls every remote thread for the owning number and stores messages
// not seen before. A failing thread is logged and skipped; only a failure to
// list threads fails the whole run. Re-running with no new remote messages
// inserts nothing.
func (p *InboxProcessor) Poll(ctx context.Context) (PollResult, error) {
	if !p.configured() {
		return PollResult{}, ErrNotConfigured
	}

	threads, err := p.gateway.ListThreads(ctx, p.settings.OwnerPhone)
	if err != nil {
		metrics.ObservePoll(metrics.OutcomeError, 0)
		p.logger.Error(ctx, "failed to list message threads", err)
		return PollResult{}, fmt.Errorf("failed to list message threads: %w", err)
	}

	var result PollResult
	for _, thread := range threads {
		threadCtx := observability.WithFields(ctx, observability.Field{Key: "contact", Value: thread.Contact})
		inserted, err := p.reconcileThread(threadCtx, thread)
		result.NewMessages += inserted
		if err != nil {
			result.ThreadsFailed++
			p.logger.Error(threadCtx, "failed to reconcile thread", err)
		}
	}

	metrics.ObservePoll(metrics.OutcomeSuccess, result.NewMessages)
	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "threads", Value: len(threads)},
		observability.Field{Key: "new_messages", Value: result.NewMessages},
		observability.Field{Key: "threads_failed", Value: result.ThreadsFailed},
	), "inbox poll finished")
	return result, nil
}

// reconcileThread stores one thread's recent messages and refreshes the
// conversation summary. It returns how many rows were newly inserted.
func (p *InboxProcessor) reconcileThread(ctx context.Context, thread gateway.Thread) (int, error) {
	contact := strings.TrimSpace(thread.Contact)
	if contact == "" {
		return 0, nil
	}

	messages, err := p.gateway.ListMessages(ctx, p.settings.OwnerPhone, contact, 0, MessagePageSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list messages: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	contactPhone := phone.Normalize(contact)
	conversation, err := p.store.UpsertConversationByPhone(ctx, contactPhone)
	if err != nil {
		return 0, err
	}
	if err := p.store.LinkConversationContact(ctx, conversation.ID); err != nil {
		return 0, err
	}

	owner := phone.Normalize(p.settings.OwnerPhone)
	inserted, inboundInserted := 0, 0
	for _, msg := range messages {
		direction := store.DirectionInbound
		if phone.Normalize(msg.Sender()) == owner {
			direction = store.DirectionOutbound
		}

		ok, err := p.store.InsertMessage(ctx, store.InsertMessageParams{
			ConversationID:    conversation.ID,
			ProviderMessageID: msg.ID,
			Direction:         direction,
			Content:           msg.Content,
			Status:            msg.Status,
			CreatedAt:         msg.CreatedAt,
		})
		if err != nil {
			return inserted, err
		}
		if !ok {
			continue
		}
		inserted++
		if direction == store.DirectionInbound {
			inboundInserted++
		}
	}

	latest, err := p.store.GetLatestMessage(ctx, conversation.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return inserted, err
	}
	if err == nil {
		if err := p.store.UpdateConversationLastMessage(ctx, conversation.ID, latest.Content, latest.CreatedAt); err != nil {
			return inserted, err
		}
	}

	if inboundInserted > 0 {
		if err := p.store.IncrementConversationUnread(ctx, conversation.ID, inboundInserted); err != nil {
			return inserted, err
		}
		p.publishInbound(ctx, contactPhone, inboundInserted)
	}
	return inserted, nil
}

func (p *InboxProcessor) publishInbound(ctx context.Context, contactPhone string, count int) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.PublishInboundReceived(ctx, contactPhone, count); err != nil {
		p.logger.Error(ctx, "failed to publish inbound messages", err)
	}
}

// ListConversations returns conversations with the most recent activity first
func (p *InboxProcessor) ListConversations(ctx context.Context) ([]store.Conversation, error) {
	if p.store == nil {
		return nil, ErrNotConfigured
	}
	conversations, err := p.store.ListConversations(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list conversations", err)
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// GetConversation returns a conversation with its messages, oldest first,
// and resets its unread counter.
func (p *InboxProcessor) GetConversation(ctx context.Context, conversationID uuid.UUID) (ConversationThread, error) {
	if p.store == nil {
		return ConversationThread{}, ErrNotConfigured
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "conversation_id", Value: conversationID.String()})

	conversation, err := p.store.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ConversationThread{}, ErrConversationNotFound
		}
		p.logger.Error(ctx, "failed to get conversation", err)
		return ConversationThread{}, fmt.Errorf("failed to get conversation: %w", err)
	}

	messages, err := p.store.ListMessagesByConversation(ctx, conversationID)
	if err != nil {
		p.logger.Error(ctx, "failed to list conversation messages", err)
		return ConversationThread{}, fmt.Errorf("failed to list conversation messages: %w", err)
	}

	if conversation.UnreadCount > 0 {
		if err := p.store.MarkConversationRead(ctx, conversationID); err != nil {
			p.logger.Error(ctx, "failed to mark conversation read", err)
		} else {
			conversation.UnreadCount = 0
		}
	}

	return ConversationThread{Conversation: conversation, Messages: messages}, nil
}

// Reply sends a message to the conversation's phone number
func (p *InboxProcessor) Reply(ctx context.Context, conversationID uuid.UUID, message string) (smsprocessor.SendResult, error) {
	if strings.TrimSpace(message) == "" {
		return smsprocessor.SendResult{}, ErrEmptyReply
	}
	if p.store == nil || p.replier == nil {
		return smsprocessor.SendResult{}, ErrNotConfigured
	}

	conversation, err := p.store.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return smsprocessor.SendResult{}, ErrConversationNotFound
		}
		p.logger.Error(ctx, "failed to get conversation", err)
		return smsprocessor.SendResult{}, fmt.Errorf("failed to get conversation: %w", err)
	}

	return p.replier.SendSMS(ctx, conversation.Phone, message)
}
