package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"errors"
	"net/http"

	"blastsms/internal/apierrors"
	"blastsms/internal/contacts/processor"
	"blastsms/internal/observability"
	"blastsms/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ContactService interface {
	CreateContact(ctx context.Context, input processor.ContactInput) (store.Contact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, input processor.ContactInput) (store.Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	GetContact(ctx context.Context, id uuid.UUID) (processor.ContactDetail, error)
	ListContacts(ctx context.Context, search, tag string) ([]store.Contact, error)
	ListTags(ctx context.Context) ([]string, error)
}

type Handler struct {
	contacts ContactService
	logger   *observability.Logger
}

func New(contacts ContactService, logger *observability.Logger) Handler {
	return Handler{
		contacts: contacts,
		logger:   logger,
	}
}

type ContactRequest struct {
	Name  string   `json:"name" binding:"required"`
	Phone string   `json:"phone" binding:"required"`
	Email string   `json:"email" binding:"omitempty,email"`
	Notes string   `json:"notes"`
	Tags  []string `json:"tags"`
}

func (r ContactRequest) input() processor.ContactInput {
	return processor.ContactInput{
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
		Notes: r.Notes,
		Tags:  r.Tags,
	}
}

// HandleListContacts lists contacts filtered by ?search= and ?tag=
func (h *Handler) HandleListContacts(c *gin.Context) {
	ctx := c.Request.Context()

	contacts, err := h.contacts.ListContacts(ctx, c.Query("search"), c.Query("tag"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func (h *Handler) HandleListTags(c *gin.Context) {
	ctx := c.Request.Context()

	tags, err := h.contacts.ListTags(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *Handler) HandleCreateContact(c *gin.Context) {
	ctx := c.Request.Context()

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	contact, err := h.contacts.CreateContact(ctx, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

func (h *Handler) HandleGetContact(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.contactID(c)
	if !ok {
		return
	}

	detail, err := h.contacts.GetContact(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *Handler) HandleUpdateContact(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.contactID(c)
	if !ok {
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	contact, err := h.contacts.UpdateContact(ctx, id, req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *Handler) HandleDeleteContact(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.contactID(c)
	if !ok {
		return
	}

	if err := h.contacts.DeleteContact(ctx, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) contactID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("contact_id"))
	if err != nil {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Invalid contact ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrInvalidContact), errors.Is(err, processor.ErrInvalidPhone):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, err.Error())
	case errors.Is(err, processor.ErrContactNotFound):
		apierrors.NotFound(c, "Contact not found")
	case errors.Is(err, processor.ErrPhoneTaken):
		apierrors.Conflict(c, apierrors.CodeConflict, "Another contact already uses this phone number")
	case errors.Is(err, processor.ErrNotConfigured):
		apierrors.MissingConfiguration(c, []string{"DB_HOST", "DB_PASSWORD"})
	default:
		apierrors.InternalError(c, err)
	}
}
