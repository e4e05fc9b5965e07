package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"errors"
	"net/http"

	"blastsms/internal/apierrors"
	"blastsms/internal/appstate"
	"blastsms/internal/campaign/processor"
	"blastsms/internal/observability"

	"github.com/gin-gonic/gin"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, input processor.CampaignInput, launch bool) (appstate.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, edit processor.CampaignEdit) (appstate.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
	LaunchCampaign(ctx context.Context, id string) (appstate.Campaign, error)
	PauseCampaign(ctx context.Context, id string) (appstate.Campaign, error)
	ResumeCampaign(ctx context.Context, id string) (appstate.Campaign, error)
	ListCampaigns(ctx context.Context) []appstate.Campaign
	GetCampaign(ctx context.Context, id string) (appstate.Campaign, error)
}

type Handler struct {
	campaigns CampaignService
	logger    *observability.Logger
}

func New(campaigns CampaignService, logger *observability.Logger) Handler {
	return Handler{
		campaigns: campaigns,
		logger:    logger,
	}
}

// CreateCampaignRequest represents a new campaign in an HTTP request
type CreateCampaignRequest struct {
	Name          string   `json:"name" binding:"required"`
	Message       string   `json:"message" binding:"required"`
	Recipients    []string `json:"recipients"`
	RecipientsCSV string   `json:"recipientsCsv"`
	Launch        bool     `json:"launch"`
}

// UpdateCampaignRequest represents campaign edits in an HTTP request
type UpdateCampaignRequest struct {
	Name          *string  `json:"name,omitempty"`
	Message       *string  `json:"message,omitempty"`
	Recipients    []string `json:"recipients,omitempty"`
	RecipientsCSV string   `json:"recipientsCsv,omitempty"`
}

func (h *Handler) HandleListCampaigns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"campaigns": h.campaigns.ListCampaigns(c.Request.Context())})
}

func (h *Handler) HandleGetCampaign(c *gin.Context) {
	campaign, err := h.campaigns.GetCampaign(c.Request.Context(), c.Param("campaign_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *Handler) HandleCreateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	campaign, err := h.campaigns.CreateCampaign(ctx, processor.CampaignInput{
		Name:          req.Name,
		Message:       req.Message,
		Recipients:    req.Recipients,
		RecipientsCSV: req.RecipientsCSV,
	}, req.Launch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

func (h *Handler) HandleUpdateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	campaign, err := h.campaigns.UpdateCampaign(ctx, c.Param("campaign_id"), processor.CampaignEdit{
		Name:          req.Name,
		Message:       req.Message,
		Recipients:    req.Recipients,
		RecipientsCSV: req.RecipientsCSV,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

func (h *Handler) HandleDeleteCampaign(c *gin.Context) {
	if err := h.campaigns.DeleteCampaign(c.Request.Context(), c.Param("campaign_id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) HandleLaunchCampaign(c *gin.Context) {
	h.transition(c, h.campaigns.LaunchCampaign)
}

func (h *Handler) HandlePauseCampaign(c *gin.Context) {
	h.transition(c, h.campaigns.PauseCampaign)
}

func (h *Handler) HandleResumeCampaign(c *gin.Context) {
	h.transition(c, h.campaigns.ResumeCampaign)
}

func (h *Handler) transition(c *gin.Context, fn func(context.Context, string) (appstate.Campaign, error)) {
	campaign, err := fn(c.Request.Context(), c.Param("campaign_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appstate.ErrCampaignNotFound):
		apierrors.NotFound(c, "Campaign not found")
	case errors.Is(err, processor.ErrInvalidRecipient),
		errors.Is(err, appstate.ErrNoRecipients),
		errors.Is(err, appstate.ErrInvalidCampaign):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, err.Error())
	case errors.Is(err, appstate.ErrAlreadyLaunched):
		apierrors.Conflict(c, apierrors.CodeConflict, "Campaign has already been launched")
	case errors.Is(err, appstate.ErrNotLaunched):
		apierrors.Conflict(c, apierrors.CodeConflict, "Campaign has not been launched")
	case errors.Is(err, appstate.ErrStatusTransition):
		apierrors.Conflict(c, apierrors.CodeConflict, "Campaign is already completed")
	case errors.Is(err, appstate.ErrNotHydrated):
		apierrors.ServiceUnavailable(c, apierrors.CodeServiceUnavailable, "State is still loading", err)
	default:
		apierrors.InternalError(c, err)
	}
}
