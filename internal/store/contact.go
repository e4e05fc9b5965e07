package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Contact struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Phone     string         `db:"phone" json:"phone"`
	Email     *string        `db:"email" json:"email"`
	Notes     *string        `db:"notes" json:"notes"`
	Tags      pq.StringArray `db:"tags" json:"tags"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type UpsertContactParams struct {
	Name  string
	Phone string
	Email *string
	Notes *string
	Tags  []string
}

type ListContactsParams struct {
	Search string
	Tag    string
}

const contactColumns = `id, name, phone, email, notes, tags, created_at, updated_at`

const sqlUpsertContactByPhone = `
INSERT INTO contacts (name, phone, email, notes, tags)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (phone) DO UPDATE SET
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	notes = EXCLUDED.notes,
	tags = EXCLUDED.tags,
	updated_at = NOW()
RETURNING ` + contactColumns

// UpsertContactByPhone creates the contact or overwrites the one holding the same phone
func (s *Store) UpsertContactByPhone(ctx context.Context, params UpsertContactParams) (Contact, error) {
	var contact Contact
	err := s.db.GetContext(ctx, &contact, sqlUpsertContactByPhone,
		params.Name, params.Phone, params.Email, params.Notes, pq.StringArray(nonNilTags(params.Tags)))
	if err != nil {
		s.logger.Error(ctx, "failed to upsert contact", err)
		return Contact{}, fmt.Errorf("failed to upsert contact: %w", err)
	}
	return contact, nil
}

const sqlUpdateContact = `
UPDATE contacts SET
	name = $2,
	phone = $3,
	email = $4,
	notes = $5,
	tags = $6,
	updated_at = NOW()
WHERE id = $1
RETURNING ` + contactColumns

func (s *Store) UpdateContact(ctx context.Context, id uuid.UUID, params UpsertContactParams) (Contact, error) {
	var contact Contact
	err := s.db.GetContext(ctx, &contact, sqlUpdateContact,
		id, params.Name, params.Phone, params.Email, params.Notes, pq.StringArray(nonNilTags(params.Tags)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contact{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return Contact{}, ErrConflict
		}
		s.logger.Error(ctx, "failed to update contact", err)
		return Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

const sqlGetContactByID = `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

func (s *Store) GetContactByID(ctx context.Context, id uuid.UUID) (Contact, error) {
	var contact Contact
	err := s.db.GetContext(ctx, &contact, sqlGetContactByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contact{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get contact by id", err)
		return Contact{}, fmt.Errorf("failed to get contact by id: %w", err)
	}
	return contact, nil
}

const sqlGetContactByPhone = `SELECT ` + contactColumns + ` FROM contacts WHERE phone = $1`

func (s *Store) GetContactByPhone(ctx context.Context, phone string) (Contact, error) {
	var contact Contact
	err := s.db.GetContext(ctx, &contact, sqlGetContactByPhone, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Contact{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get contact by phone", err)
		return Contact{}, fmt.Errorf("failed to get contact by phone: %w", err)
	}
	return contact, nil
}

// Search matches name, phone or email case-insensitively; Tag must be one of the contact's tags.
const sqlListContacts = `
SELECT ` + contactColumns + `
FROM contacts
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%' OR COALESCE(email, '') ILIKE '%' || $1 || '%')
  AND ($2 = '' OR $2 = ANY(tags))
ORDER BY created_at DESC`

func (s *Store) ListContacts(ctx context.Context, params ListContactsParams) ([]Contact, error) {
	contacts := []Contact{}
	err := s.db.SelectContext(ctx, &contacts, sqlListContacts, params.Search, params.Tag)
	if err != nil {
		s.logger.Error(ctx, "failed to list contacts", err)
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

const sqlListContactTags = `
SELECT DISTINCT tag FROM contacts, UNNEST(tags) AS tag ORDER BY tag`

func (s *Store) ListContactTags(ctx context.Context) ([]string, error) {
	tags := []string{}
	err := s.db.SelectContext(ctx, &tags, sqlListContactTags)
	if err != nil {
		s.logger.Error(ctx, "failed to list contact tags", err)
		return nil, fmt.Errorf("failed to list contact tags: %w", err)
	}
	return tags, nil
}

const sqlDeleteContact = `DELETE FROM contacts WHERE id = $1`

func (s *Store) DeleteContact(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, sqlDeleteContact, id)
	if err != nil {
		s.logger.Error(ctx, "failed to delete contact", err)
		return fmt.Errorf("failed to delete contact: %w", err)
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

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
