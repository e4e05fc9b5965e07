package twilio

import (
	"blastsms/internal/gateway"
	"blastsms/internal/observability"
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the slice of the Twilio REST API the sender needs
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Client sends SMS through Twilio's Messages API
type Client struct {
	api    messageCreator
	logger *observability.Logger
}

// NewClient creates a Twilio sender from account credentials
func NewClient(accountSID, authToken string, logger *observability.Logger) *Client {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Client{api: rest.Api, logger: logger}
}

// Send creates one message. Twilio API errors are rejections; anything else
// is a transport failure.
func (c *Client) Send(ctx context.Context, msg gateway.Outbound) (gateway.Receipt, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "gateway", Value: "twilio"},
		observability.Field{Key: "to", Value: msg.To},
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetFrom(msg.From)
	params.SetBody(msg.Content)

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		var restErr *twilioclient.TwilioRestError
		if errors.As(err, &restErr) {
			c.logger.Info(ctx, fmt.Sprintf("twilio rejected message: %s", restErr.Message))
			return gateway.Receipt{Error: restErr.Message}, nil
		}
		c.logger.Error(ctx, "failed to call twilio API", err)
		return gateway.Receipt{}, fmt.Errorf("failed to call twilio: %w", err)
	}

	receipt := gateway.Receipt{}
	if resp.Sid != nil {
		receipt.ID = *resp.Sid
	}
	if resp.Status != nil {
		receipt.Status = *resp.Status
	}
	if !receipt.Accepted() {
		receipt.Error = "twilio returned no message sid"
	}
	return receipt, nil
}
