package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blastsms/internal/appstate"
	"blastsms/internal/observability"
	"blastsms/internal/phone"
)

// CampaignState defines the state operations required by CampaignProcessor
type CampaignState interface {
	CreateCampaign(ctx context.Context, params appstate.NewCampaign) (appstate.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, params appstate.CampaignUpdate) (appstate.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
	LaunchCampaign(ctx context.Context, id string) (appstate.Campaign, []appstate.QueueMessage, error)
	SetCampaignStatus(ctx context.Context, id string, status appstate.CampaignStatus) (appstate.Campaign, error)
	Campaigns() []appstate.Campaign
	Campaign(id string) (appstate.Campaign, error)
}

// DrainStopper cancels an in-progress queue drain.
type DrainStopper interface {
	Stop()
}

var ErrInvalidRecipient = errors.New("invalid recipient phone number")

type CampaignProcessor struct {
	state   CampaignState
	stopper DrainStopper
	logger  *observability.Logger
}

func New(state CampaignState, stopper DrainStopper, logger *observability.Logger) CampaignProcessor {
	return CampaignProcessor{
		state:   state,
		stopper: stopper,
		logger:  logger,
	}
}

// CampaignInput is a campaign as submitted by the dashboard. Recipients from
// the list and from the CSV text are merged.
type CampaignInput struct {
	Name          string
	Message       string
	Recipients    []string
	RecipientsCSV string
}

// CampaignEdit holds optional edits. Recipients are replaced only when a list
// or CSV text is supplied.
type CampaignEdit struct {
	Name          *string
	Message       *string
	Recipients    []string
	RecipientsCSV string
}

// CreateCampaign stores a draft and, if launch is set, launches it straight away.
func (p *CampaignProcessor) CreateCampaign(ctx context.Context, input CampaignInput, launch bool) (appstate.Campaign, error) {
	recipients, err := Recipients(input.Recipients, input.RecipientsCSV)
	if err != nil {
		return appstate.Campaign{}, err
	}

	campaign, err := p.state.CreateCampaign(ctx, appstate.NewCampaign{
		Name:       input.Name,
		Message:    input.Message,
		Recipients: recipients,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create campaign", err)
		return appstate.Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: campaign.ID},
		observability.Field{Key: "recipient_count", Value: campaign.RecipientCount},
	)
	p.logger.Info(ctx, "campaign created")

	if !launch {
		return campaign, nil
	}
	return p.LaunchCampaign(ctx, campaign.ID)
}

func (p *CampaignProcessor) UpdateCampaign(ctx context.Context, id string, edit CampaignEdit) (appstate.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: id})

	update := appstate.CampaignUpdate{Name: edit.Name, Message: edit.Message}
	if edit.Recipients != nil || strings.TrimSpace(edit.RecipientsCSV) != "" {
		recipients, err := Recipients(edit.Recipients, edit.RecipientsCSV)
		if err != nil {
			return appstate.Campaign{}, err
		}
		update.Recipients = recipients
	}

	campaign, err := p.state.UpdateCampaign(ctx, id, update)
	if err != nil {
		p.logger.Error(ctx, "failed to update campaign", err)
		return appstate.Campaign{}, fmt.Errorf("failed to update campaign: %w", err)
	}
	return campaign, nil
}

// DeleteCampaign stops any drain before removing the campaign and its queue entries.
func (p *CampaignProcessor) DeleteCampaign(ctx context.Context, id string) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: id})

	p.stopper.Stop()
	if err := p.state.DeleteCampaign(ctx, id); err != nil {
		p.logger.Error(ctx, "failed to delete campaign", err)
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	p.logger.Info(ctx, "campaign deleted")
	return nil
}

func (p *CampaignProcessor) LaunchCampaign(ctx context.Context, id string) (appstate.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: id})

	campaign, batch, err := p.state.LaunchCampaign(ctx, id)
	if err != nil {
		p.logger.Error(ctx, "failed to launch campaign", err)
		return appstate.Campaign{}, fmt.Errorf("failed to launch campaign: %w", err)
	}

	p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "queued", Value: len(batch)}), "campaign launched")
	return campaign, nil
}

func (p *CampaignProcessor) PauseCampaign(ctx context.Context, id string) (appstate.Campaign, error) {
	return p.setStatus(ctx, id, appstate.CampaignStatusPaused)
}

func (p *CampaignProcessor) ResumeCampaign(ctx context.Context, id string) (appstate.Campaign, error) {
	return p.setStatus(ctx, id, appstate.CampaignStatusRunning)
}

// setStatus cancels the drain before the transition. Resuming does not restart
// sending; the queue is drained again on the next send request.
func (p *CampaignProcessor) setStatus(ctx context.Context, id string, status appstate.CampaignStatus) (appstate.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_id", Value: id},
		observability.Field{Key: "status", Value: string(status)},
	)

	p.stopper.Stop()
	campaign, err := p.state.SetCampaignStatus(ctx, id, status)
	if err != nil {
		p.logger.Error(ctx, "failed to set campaign status", err)
		return appstate.Campaign{}, fmt.Errorf("failed to set campaign status: %w", err)
	}
	return campaign, nil
}

func (p *CampaignProcessor) ListCampaigns(_ context.Context) []appstate.Campaign {
	return p.state.Campaigns()
}

func (p *CampaignProcessor) GetCampaign(_ context.Context, id string) (appstate.Campaign, error) {
	campaign, err := p.state.Campaign(id)
	if err != nil {
		return appstate.Campaign{}, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

// Recipients merges a recipient list with CSV text into normalized, unique
// numbers in submission order. Invalid entries in the list are rejected; the
// CSV import skips them.
func Recipients(list []string, csv string) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(list))
	add := func(raw string) {
		n := phone.Normalize(raw)
		if n == "" {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	for _, raw := range list {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if !phone.IsValid(raw) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRecipient, raw)
		}
		add(raw)
	}
	for _, raw := range phone.ParseCSV(csv) {
		add(raw)
	}

	if len(out) == 0 {
		return nil, appstate.ErrNoRecipients
	}
	return out, nil
}
