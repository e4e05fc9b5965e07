package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"errors"
	"net/http"

	"blastsms/internal/apierrors"
	"blastsms/internal/appstate"
	"blastsms/internal/observability"
	"blastsms/internal/queue/processor"

	"github.com/gin-gonic/gin"
)

// QueueRunner controls the background drain
type QueueRunner interface {
	Start(ctx context.Context) error
	Stop()
	Clear(ctx context.Context) error
	IsSending() bool
	LastResult() (processor.DrainResult, bool)
}

// QueueReader reads queue entries from the application state
type QueueReader interface {
	QueueMessages(filter appstate.QueueFilter) []appstate.QueueMessage
	QueueStats() appstate.QueueStats
}

type Handler struct {
	runner QueueRunner
	reader QueueReader
	logger *observability.Logger
}

func New(runner QueueRunner, reader QueueReader, logger *observability.Logger) Handler {
	return Handler{
		runner: runner,
		reader: reader,
		logger: logger,
	}
}

type QueueResponse struct {
	Messages  []appstate.QueueMessage `json:"messages"`
	Stats     appstate.QueueStats     `json:"stats"`
	Progress  float64                 `json:"progress"`
	Sending   bool                    `json:"sending"`
	LastDrain *processor.DrainResult  `json:"lastDrain,omitempty"`
}

// HandleGetQueue lists queue messages, optionally filtered by status and campaign_id
func (h *Handler) HandleGetQueue(c *gin.Context) {
	filter := appstate.QueueFilter{
		CampaignID: c.Query("campaign_id"),
	}
	if status := c.Query("status"); status != "" && status != "all" {
		filter.Status = appstate.MessageStatus(status)
		if !filter.Status.Valid() {
			apierrors.BadRequest(c, apierrors.CodeInvalidInput, "status must be one of queued, sending, delivered, failed")
			return
		}
	}

	stats := h.reader.QueueStats()
	resp := QueueResponse{
		Messages: h.reader.QueueMessages(filter),
		Stats:    stats,
		Sending:  h.runner.IsSending(),
	}
	if stats.Total > 0 {
		resp.Progress = float64(stats.Delivered+stats.Failed) / float64(stats.Total) * 100
	}
	if last, ok := h.runner.LastResult(); ok {
		resp.LastDrain = &last
	}

	c.JSON(http.StatusOK, resp)
}

// HandleSendAll starts draining the queue in the background
func (h *Handler) HandleSendAll(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.runner.Start(ctx); err != nil {
		if errors.Is(err, processor.ErrDrainInProgress) {
			apierrors.Conflict(c, apierrors.CodeConflict, "Queue is already sending")
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	h.logger.Info(ctx, "queue drain started")
	c.JSON(http.StatusAccepted, gin.H{"success": true, "sending": true})
}

// HandleStop stops the drain after the message in flight
func (h *Handler) HandleStop(c *gin.Context) {
	h.runner.Stop()
	h.logger.Info(c.Request.Context(), "sending stopped")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sending stopped"})
}

// HandleClear stops the drain and removes every queue entry
func (h *Handler) HandleClear(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.runner.Clear(ctx); err != nil {
		if errors.Is(err, appstate.ErrNotHydrated) {
			apierrors.ServiceUnavailable(c, apierrors.CodeServiceUnavailable, "State is still loading", err)
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	h.logger.Info(ctx, "queue cleared")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Queue cleared"})
}
