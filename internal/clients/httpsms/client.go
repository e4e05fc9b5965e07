package httpsms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blastsms/internal/gateway"
	"blastsms/internal/observability"
)

const (
	sendPath     = "/v1/messages/send"
	threadsPath  = "/v1/message-threads"
	messagesPath = "/v1/messages"

	// DefaultMessageLimit is the page size used when reconciling a thread.
	DefaultMessageLimit = 20
)

var ErrUnexpectedStatus = errors.New("unexpected status from httpsms")

// envelope is the common httpSMS response wrapper
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type sentMessage struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Client talks to the httpSMS REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a new httpSMS client
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *observability.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Send posts one message. A response whose data carries no id is a rejection,
// reported through the receipt rather than as an error. Transport failures
// and bodies that are not JSON are errors.
func (c *Client) Send(ctx context.Context, msg gateway.Outbound) (gateway.Receipt, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "gateway", Value: "httpsms"},
		observability.Field{Key: "to", Value: msg.To},
	)

	payload, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error(ctx, "failed to marshal send request", err)
		return gateway.Receipt{}, fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error(ctx, "failed to create send request", err)
		return gateway.Receipt{}, fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	raw, _, err := c.do(ctx, req)
	if err != nil {
		return gateway.Receipt{}, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Error(ctx, "failed to parse send response", err)
		return gateway.Receipt{}, fmt.Errorf("failed to parse send response: %w", err)
	}

	var sent sentMessage
	if len(env.Data) > 0 && env.Data[0] == '{' {
		if err := json.Unmarshal(env.Data, &sent); err != nil {
			c.logger.Error(ctx, "failed to parse send response data", err)
			return gateway.Receipt{}, fmt.Errorf("failed to parse send response data: %w", err)
		}
	}

	if sent.ID == "" {
		reason := env.Message
		if reason == "" {
			reason = string(raw)
		}
		c.logger.Info(ctx, fmt.Sprintf("httpsms rejected message: %s", reason))
		return gateway.Receipt{Error: reason}, nil
	}

	return gateway.Receipt{ID: sent.ID, Status: sent.Status}, nil
}

// ListThreads returns the message threads of the owning number
func (c *Client) ListThreads(ctx context.Context, owner string) ([]gateway.Thread, error) {
	query := url.Values{}
	query.Set("owner", owner)

	var threads []gateway.Thread
	if err := c.getList(ctx, threadsPath, query, &threads); err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	return threads, nil
}

// ListMessages returns the most recent messages between owner and contact
func (c *Client) ListMessages(ctx context.Context, owner, contact string, skip, limit int) ([]gateway.Message, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	query := url.Values{}
	query.Set("owner", owner)
	query.Set("contact", contact)
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var messages []gateway.Message
	if err := c.getList(ctx, messagesPath, query, &messages); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (c *Client) getList(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		c.logger.Error(ctx, "failed to create list request", err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	raw, status, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		err := fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, status, truncate(string(raw), 200))
		c.logger.Error(ctx, "httpsms list request failed", err)
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Error(ctx, "failed to parse list response", err)
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logger.Error(ctx, "failed to parse list response data", err)
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, int, error) {
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call httpsms API", err)
		return nil, 0, fmt.Errorf("failed to call httpsms: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(ctx, "failed to read httpsms response", err)
		return nil, resp.StatusCode, fmt.Errorf("failed to read httpsms response: %w", err)
	}
	return raw, resp.StatusCode, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
