package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"

	// DefaultMessageStatus is stored when the gateway reports none
	DefaultMessageStatus = "sent"
)

type Message struct {
	ID                uuid.UUID `db:"id" json:"id"`
	ConversationID    uuid.UUID `db:"conversation_id" json:"conversation_id"`
	ProviderMessageID string    `db:"provider_message_id" json:"provider_message_id"`
	Direction         string    `db:"direction" json:"direction"`
	Content           string    `db:"content" json:"content"`
	Status            string    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

type InsertMessageParams struct {
	ConversationID    uuid.UUID
	ProviderMessageID string
	Direction         string
	Content           string
	Status            string
	CreatedAt         time.Time
}

const sqlInsertMessageIgnoreDuplicate = `
INSERT INTO messages (conversation_id, provider_message_id, direction, content, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (provider_message_id) DO NOTHING`

// InsertMessage stores a message unless its provider id is already known.
// It reports whether a row was actually inserted.
func (s *Store) InsertMessage(ctx context.Context, params InsertMessageParams) (bool, error) {
	status := params.Status
	if status == "" {
		status = DefaultMessageStatus
	}
	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, sqlInsertMessageIgnoreDuplicate,
		params.ConversationID, params.ProviderMessageID, params.Direction, params.Content, status, createdAt)
	if err != nil {
		s.logger.Error(ctx, "failed to insert message", err)
		return false, fmt.Errorf("failed to insert message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.Error(ctx, "failed to get rows affected", err)
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

const sqlGetLatestMessage = `
SELECT id, conversation_id, provider_message_id, direction, content, status, created_at
FROM messages
WHERE conversation_id = $1
ORDER BY created_at DESC
LIMIT 1`

func (s *Store) GetLatestMessage(ctx context.Context, conversationID uuid.UUID) (Message, error) {
	var message Message
	err := s.db.GetContext(ctx, &message, sqlGetLatestMessage, conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Message{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get latest message", err)
		return Message{}, fmt.Errorf("failed to get latest message: %w", err)
	}
	return message, nil
}

const sqlListMessagesByConversation = `
SELECT id, conversation_id, provider_message_id, direction, content, status, created_at
FROM messages
WHERE conversation_id = $1
ORDER BY created_at ASC`

func (s *Store) ListMessagesByConversation(ctx context.Context, conversationID uuid.UUID) ([]Message, error) {
	messages := []Message{}
	err := s.db.SelectContext(ctx, &messages, sqlListMessagesByConversation, conversationID)
	if err != nil {
		s.logger.Error(ctx, "failed to list messages by conversation", err)
		return nil, fmt.Errorf("failed to list messages by conversation: %w", err)
	}
	return messages, nil
}

const sqlCountMessages = `SELECT COUNT(*) FROM messages`

func (s *Store) CountMessages(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountMessages); err != nil {
		s.logger.Error(ctx, "failed to count messages", err)
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}
