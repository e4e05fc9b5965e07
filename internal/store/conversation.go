package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Phone         string     `db:"phone" json:"phone"`
	ContactID     *uuid.UUID `db:"contact_id" json:"contact_id"`
	ContactName   *string    `db:"contact_name" json:"contact_name"`
	LastMessage   *string    `db:"last_message" json:"last_message"`
	LastMessageAt *time.Time `db:"last_message_at" json:"last_message_at"`
	UnreadCount   int        `db:"unread_count" json:"unread_count"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

const conversationColumns = `c.id, c.phone, c.contact_id, ct.name AS contact_name, c.last_message, c.last_message_at, c.unread_count, c.created_at, c.updated_at`

const sqlUpsertConversationByPhone = `
WITH upserted AS (
	INSERT INTO conversations (phone)
	VALUES ($1)
	ON CONFLICT (phone) DO UPDATE SET updated_at = NOW()
	RETURNING *
)
SELECT ` + conversationColumns + `
FROM upserted c
LEFT JOIN contacts ct ON ct.id = c.contact_id`

// UpsertConversationByPhone returns the single conversation for phone, creating it if needed
func (s *Store) UpsertConversationByPhone(ctx context.Context, phone string) (Conversation, error) {
	var conversation Conversation
	err := s.db.GetContext(ctx, &conversation, sqlUpsertConversationByPhone, phone)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert conversation", err)
		return Conversation{}, fmt.Errorf("failed to upsert conversation: %w", err)
	}
	return conversation, nil
}

const sqlUpsertConversationForContact = `
INSERT INTO conversations (phone, contact_id)
VALUES ($1, $2)
ON CONFLICT (phone) DO UPDATE SET contact_id = EXCLUDED.contact_id, updated_at = NOW()`

// UpsertConversationForContact makes sure the contact's phone has a conversation linked to it
func (s *Store) UpsertConversationForContact(ctx context.Context, phone string, contactID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, sqlUpsertConversationForContact, phone, contactID)
	if err != nil {
		s.logger.Error(ctx, "failed to upsert conversation for contact", err)
		return fmt.Errorf("failed to upsert conversation for contact: %w", err)
	}
	return nil
}

const sqlLinkConversationContact = `
UPDATE conversations c
SET contact_id = ct.id, updated_at = NOW()
FROM contacts ct
WHERE c.id = $1 AND ct.phone = c.phone AND c.contact_id IS DISTINCT FROM ct.id`

// LinkConversationContact attaches the contact holding the conversation's phone, if any
func (s *Store) LinkConversationContact(ctx context.Context, conversationID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, sqlLinkConversationContact, conversationID)
	if err != nil {
		s.logger.Error(ctx, "failed to link conversation contact", err)
		return fmt.Errorf("failed to link conversation contact: %w", err)
	}
	return nil
}

const sqlGetConversationByID = `
SELECT ` + conversationColumns + `
FROM conversations c
LEFT JOIN contacts ct ON ct.id = c.contact_id
WHERE c.id = $1`

func (s *Store) GetConversationByID(ctx context.Context, id uuid.UUID) (Conversation, error) {
	var conversation Conversation
	err := s.db.GetContext(ctx, &conversation, sqlGetConversationByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Conversation{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get conversation by ID", err)
		return Conversation{}, fmt.Errorf("failed to get conversation by ID: %w", err)
	}
	return conversation, nil
}

const sqlGetConversationByPhone = `
SELECT ` + conversationColumns + `
FROM conversations c
LEFT JOIN contacts ct ON ct.id = c.contact_id
WHERE c.phone = $1`

func (s *Store) GetConversationByPhone(ctx context.Context, phone string) (Conversation, error) {
	var conversation Conversation
	err := s.db.GetContext(ctx, &conversation, sqlGetConversationByPhone, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Conversation{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get conversation by phone", err)
		return Conversation{}, fmt.Errorf("failed to get conversation by phone: %w", err)
	}
	return conversation, nil
}

const sqlListConversations = `
SELECT ` + conversationColumns + `
FROM conversations c
LEFT JOIN contacts ct ON ct.id = c.contact_id
ORDER BY c.last_message_at DESC NULLS LAST, c.created_at DESC`

// ListConversations returns every conversation, most recent activity first
func (s *Store) ListConversations(ctx context.Context) ([]Conversation, error) {
	conversations := []Conversation{}
	err := s.db.SelectContext(ctx, &conversations, sqlListConversations)
	if err != nil {
		s.logger.Error(ctx, "failed to list conversations", err)
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

const sqlUpdateConversationLastMessage = `
UPDATE conversations SET last_message = $2, last_message_at = $3, updated_at = NOW() WHERE id = $1`

func (s *Store) UpdateConversationLastMessage(ctx context.Context, conversationID uuid.UUID, content string, at time.Time) error {
	return s.execOne(ctx, "update conversation last message", sqlUpdateConversationLastMessage, conversationID, content, at)
}

const sqlIncrementConversationUnread = `
UPDATE conversations SET unread_count = unread_count + $2, updated_at = NOW() WHERE id = $1`

func (s *Store) IncrementConversationUnread(ctx context.Context, conversationID uuid.UUID, by int) error {
	return s.execOne(ctx, "increment conversation unread", sqlIncrementConversationUnread, conversationID, by)
}

const sqlMarkConversationRead = `
UPDATE conversations SET unread_count = 0 WHERE id = $1`

func (s *Store) MarkConversationRead(ctx context.Context, conversationID uuid.UUID) error {
	return s.execOne(ctx, "mark conversation read", sqlMarkConversationRead, conversationID)
}

// execOne runs an update that must touch exactly one row
func (s *Store) execOne(ctx context.Context, action, query string, args ...interface{}) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.Error(ctx, "failed to "+action, err)
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.Error(ctx, "failed to get rows affected", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
