package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blastsms/internal/observability"
	"blastsms/internal/phone"
	"blastsms/internal/store"

	"github.com/google/uuid"
)

// ContactStore defines the database operations required by ContactProcessor
type ContactStore interface {
	UpsertContactByPhone(ctx context.Context, params store.UpsertContactParams) (store.Contact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, params store.UpsertContactParams) (store.Contact, error)
	GetContactByID(ctx context.Context, id uuid.UUID) (store.Contact, error)
	ListContacts(ctx context.Context, params store.ListContactsParams) ([]store.Contact, error)
	ListContactTags(ctx context.Context) ([]string, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	UpsertConversationForContact(ctx context.Context, phone string, contactID uuid.UUID) error
	GetConversationByPhone(ctx context.Context, phone string) (store.Conversation, error)
	ListMessagesByConversation(ctx context.Context, conversationID uuid.UUID) ([]store.Message, error)
}

// RecentMessageLimit is how many messages a contact detail shows.
const RecentMessageLimit = 5

var (
	ErrInvalidContact  = errors.New("name and phone are required")
	ErrInvalidPhone    = errors.New("phone number is not valid")
	ErrContactNotFound = errors.New("contact not found")
	ErrPhoneTaken      = errors.New("another contact already uses this phone")
	ErrNotConfigured   = errors.New("contact store is not configured")
)

// ContactInput is the editable part of a contact. Blank email and notes are
// stored as null.
type ContactInput struct {
	Name  string
	Phone string
	Email string
	Notes string
	Tags  []string
}

type ContactDetail struct {
	Contact        store.Contact   `json:"contact"`
	ConversationID *uuid.UUID      `json:"conversation_id"`
	RecentMessages []store.Message `json:"recent_messages"`
}

type ContactProcessor struct {
	store  ContactStore
	logger *observability.Logger
}

func New(store ContactStore, logger *observability.Logger) ContactProcessor {
	return ContactProcessor{
		store:  store,
		logger: logger,
	}
}

// CreateContact upserts the contact by phone and links the conversation for
// that phone to it.
func (p *ContactProcessor) CreateContact(ctx context.Context, input ContactInput) (store.Contact, error) {
	if p.store == nil {
		return store.Contact{}, ErrNotConfigured
	}
	params, err := toParams(input)
	if err != nil {
		return store.Contact{}, err
	}

	contact, err := p.store.UpsertContactByPhone(ctx, params)
	if err != nil {
		p.logger.Error(ctx, "failed to create contact", err)
		return store.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}

	p.linkConversation(ctx, contact)
	return contact, nil
}

// UpdateContact overwrites a contact and re-links the conversation for its phone
func (p *ContactProcessor) UpdateContact(ctx context.Context, id uuid.UUID, input ContactInput) (store.Contact, error) {
	if p.store == nil {
		return store.Contact{}, ErrNotConfigured
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "contact_id", Value: id.String()})

	params, err := toParams(input)
	if err != nil {
		return store.Contact{}, err
	}

	contact, err := p.store.UpdateContact(ctx, id, params)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return store.Contact{}, ErrContactNotFound
		case errors.Is(err, store.ErrConflict):
			return store.Contact{}, ErrPhoneTaken
		}
		p.logger.Error(ctx, "failed to update contact", err)
		return store.Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}

	p.linkConversation(ctx, contact)
	return contact, nil
}

// linkConversation is best effort: the contact write already succeeded
func (p *ContactProcessor) linkConversation(ctx context.Context, contact store.Contact) {
	if err := p.store.UpsertConversationForContact(ctx, contact.Phone, contact.ID); err != nil {
		p.logger.Error(ctx, "failed to link conversation to contact", err)
	}
}

func (p *ContactProcessor) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if p.store == nil {
		return ErrNotConfigured
	}
	if err := p.store.DeleteContact(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrContactNotFound
		}
		p.logger.Error(ctx, "failed to delete contact", err)
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// GetContact returns the contact with its conversation and most recent messages
func (p *ContactProcessor) GetContact(ctx context.Context, id uuid.UUID) (ContactDetail, error) {
	if p.store == nil {
		return ContactDetail{}, ErrNotConfigured
	}

	contact, err := p.store.GetContactByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ContactDetail{}, ErrContactNotFound
		}
		p.logger.Error(ctx, "failed to get contact", err)
		return ContactDetail{}, fmt.Errorf("failed to get contact: %w", err)
	}

	detail := ContactDetail{Contact: contact, RecentMessages: []store.Message{}}

	conversation, err := p.store.GetConversationByPhone(ctx, contact.Phone)
	if errors.Is(err, store.ErrNotFound) {
		return detail, nil
	}
	if err != nil {
		p.logger.Error(ctx, "failed to get contact conversation", err)
		return ContactDetail{}, fmt.Errorf("failed to get contact conversation: %w", err)
	}
	detail.ConversationID = &conversation.ID

	messages, err := p.store.ListMessagesByConversation(ctx, conversation.ID)
	if err != nil {
		p.logger.Error(ctx, "failed to list contact messages", err)
		return ContactDetail{}, fmt.Errorf("failed to list contact messages: %w", err)
	}
	if len(messages) > RecentMessageLimit {
		messages = messages[len(messages)-RecentMessageLimit:]
	}
	detail.RecentMessages = messages
	return detail, nil
}

// ListContacts filters by a free-text search over name, phone and email and by tag
func (p *ContactProcessor) ListContacts(ctx context.Context, search, tag string) ([]store.Contact, error) {
	if p.store == nil {
		return nil, ErrNotConfigured
	}
	contacts, err := p.store.ListContacts(ctx, store.ListContactsParams{
		Search: strings.TrimSpace(search),
		Tag:    strings.TrimSpace(tag),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list contacts", err)
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (p *ContactProcessor) ListTags(ctx context.Context) ([]string, error) {
	if p.store == nil {
		return nil, ErrNotConfigured
	}
	tags, err := p.store.ListContactTags(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list contact tags", err)
		return nil, fmt.Errorf("failed to list contact tags: %w", err)
	}
	return tags, nil
}

func toParams(input ContactInput) (store.UpsertContactParams, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.Phone) == "" {
		return store.UpsertContactParams{}, ErrInvalidContact
	}
	if !phone.IsValid(input.Phone) {
		return store.UpsertContactParams{}, ErrInvalidPhone
	}

	return store.UpsertContactParams{
		Name:  name,
		Phone: phone.Normalize(input.Phone),
		Email: optional(input.Email),
		Notes: optional(input.Notes),
		Tags:  NormalizeTags(input.Tags),
	}, nil
}

// NormalizeTags trims tags, splits comma separated entries and drops blanks
// and repeats, keeping first-seen order.
func NormalizeTags(raw []string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, entry := range raw {
		for _, tag := range strings.Split(entry, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
