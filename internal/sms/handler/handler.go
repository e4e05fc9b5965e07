package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"errors"
	"net/http"

	"blastsms/internal/apierrors"
	"blastsms/internal/observability"
	"blastsms/internal/sms/processor"

	"github.com/gin-gonic/gin"
)

// Sender sends a single message immediately
type Sender interface {
	SendSMS(ctx context.Context, phone, message string) (processor.SendResult, error)
}

type Handler struct {
	sender Sender
	logger *observability.Logger
}

func New(sender Sender, logger *observability.Logger) Handler {
	return Handler{
		sender: sender,
		logger: logger,
	}
}

// SendRequest is the body of both send routes
type SendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// HandleSendSMS sends an ad-hoc message, used by the compose screen
func (h *Handler) HandleSendSMS(c *gin.Context) {
	h.send(c, "Failed to send SMS")
}

// HandleSendMessage sends a reply from the inbox
func (h *Handler) HandleSendMessage(c *gin.Context) {
	h.send(c, "Failed to send message")
}

func (h *Handler) send(c *gin.Context, failureMessage string) {
	ctx := c.Request.Context()

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	result, err := h.sender.SendSMS(ctx, req.Phone, req.Message)
	if err != nil {
		h.handleError(c, err, failureMessage)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) handleError(c *gin.Context, err error, failureMessage string) {
	switch {
	case errors.Is(err, processor.ErrInvalidInput):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "phone and message are required")
	case errors.Is(err, processor.ErrGatewayNotConfigured):
		apierrors.MissingConfiguration(c, []string{"HTTPSMS_API_KEY", "HTTPSMS_FROM_PHONE"})
	default:
		apierrors.Failure(c, failureMessage, err)
	}
}
