package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"errors"
	"net/http"

	"blastsms/internal/apierrors"
	"blastsms/internal/inbox/processor"
	"blastsms/internal/observability"
	smsprocessor "blastsms/internal/sms/processor"
	"blastsms/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Inbox is the processor surface the handler drives
type Inbox interface {
	Poll(ctx context.Context) (processor.PollResult, error)
	MissingSettings() []string
	ListConversations(ctx context.Context) ([]store.Conversation, error)
	GetConversation(ctx context.Context, conversationID uuid.UUID) (processor.ConversationThread, error)
	Reply(ctx context.Context, conversationID uuid.UUID, message string) (smsprocessor.SendResult, error)
}

type Handler struct {
	inbox  Inbox
	logger *observability.Logger
}

func New(inbox Inbox, logger *observability.Logger) Handler {
	return Handler{
		inbox:  inbox,
		logger: logger,
	}
}

type ReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// HandlePoll pulls new messages from the gateway into the inbox
func (h *Handler) HandlePoll(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.inbox.Poll(ctx)
	if err != nil {
		if errors.Is(err, processor.ErrNotConfigured) {
			apierrors.MissingConfiguration(c, h.inbox.MissingSettings())
			return
		}
		apierrors.Failure(c, "Failed to poll messages", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "newMessages": result.NewMessages})
}

// HandleListConversations lists conversations, latest activity first
func (h *Handler) HandleListConversations(c *gin.Context) {
	ctx := c.Request.Context()

	conversations, err := h.inbox.ListConversations(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// HandleGetConversation returns one conversation with its messages
func (h *Handler) HandleGetConversation(c *gin.Context) {
	ctx := c.Request.Context()

	conversationID, err := uuid.Parse(c.Param("conversation_id"))
	if err != nil {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Invalid conversation ID")
		return
	}

	thread, err := h.inbox.GetConversation(ctx, conversationID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, thread)
}

// HandleReply sends a message into an existing conversation
func (h *Handler) HandleReply(c *gin.Context) {
	ctx := c.Request.Context()

	conversationID, err := uuid.Parse(c.Param("conversation_id"))
	if err != nil {
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Invalid conversation ID")
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	result, err := h.inbox.Reply(ctx, conversationID, req.Message)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrConversationNotFound):
		apierrors.NotFound(c, "Conversation not found")
	case errors.Is(err, processor.ErrEmptyReply), errors.Is(err, smsprocessor.ErrInvalidInput):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, err.Error())
	case errors.Is(err, processor.ErrNotConfigured), errors.Is(err, smsprocessor.ErrGatewayNotConfigured):
		apierrors.MissingConfiguration(c, h.inbox.MissingSettings())
	default:
		apierrors.InternalError(c, err)
	}
}
