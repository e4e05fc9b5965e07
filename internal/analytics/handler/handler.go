package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"blastsms/internal/analytics/processor"
	"blastsms/internal/apierrors"
	"blastsms/internal/observability"

	"github.com/gin-gonic/gin"
)

type OverviewReader interface {
	GetOverview(ctx context.Context, days int) (processor.Overview, error)
}

type Handler struct {
	analytics OverviewReader
	logger    *observability.Logger
}

func New(analytics OverviewReader, logger *observability.Logger) Handler {
	return Handler{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleGetAnalytics returns totals and chart series. ?days= sets the daily window.
func (h *Handler) HandleGetAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	days := processor.DefaultDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.BadRequest(c, apierrors.CodeInvalidInput, "days must be a number")
			return
		}
		days = parsed
	}

	overview, err := h.analytics.GetOverview(ctx, days)
	if err != nil {
		if errors.Is(err, processor.ErrInvalidDateRange) {
			apierrors.BadRequest(c, apierrors.CodeInvalidInput, err.Error())
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}
