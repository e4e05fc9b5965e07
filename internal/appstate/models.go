package appstate

import "time"

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusRunning   CampaignStatus = "running"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusPaused    CampaignStatus = "paused"
)

type MessageStatus string

const (
	MessageStatusQueued    MessageStatus = "queued"
	MessageStatusSending   MessageStatus = "sending"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusFailed    MessageStatus = "failed"
)

// Valid reports whether s is one of the four queue statuses.
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageStatusQueued, MessageStatusSending, MessageStatusDelivered, MessageStatusFailed:
		return true
	}
	return false
}

// Campaign is a named message sent to a list of recipients. Delivered, Failed
// and Sending are derived from the queue and only written by recalculation.
type Campaign struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Message        string         `json:"message"`
	Recipients     []string       `json:"recipients"`
	RecipientCount int            `json:"recipientCount"`
	Status         CampaignStatus `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	Delivered      int            `json:"delivered"`
	Failed         int            `json:"failed"`
	Sending        int            `json:"sending"`
}

// QueueMessage is one recipient's copy of a launched campaign.
type QueueMessage struct {
	ID             string        `json:"id"`
	CampaignID     string        `json:"campaignId"`
	CampaignName   string        `json:"campaignName"`
	Recipient      string        `json:"recipient"`
	MessageText    string        `json:"messageText"`
	Status         MessageStatus `json:"status"`
	Timestamp      time.Time     `json:"timestamp"`
	Error          string        `json:"error,omitempty"`
	APISuccess     *bool         `json:"apiSuccess,omitempty"`
	TextID         string        `json:"textId,omitempty"`
	DeliveryStatus string        `json:"deliveryStatus,omitempty"`
}

// MessageUpdate carries the optional gateway fields recorded with a status change.
type MessageUpdate struct {
	Error          string
	APISuccess     *bool
	TextID         string
	DeliveryStatus string
}

// StatusUpdate is the outcome of UpdateMessageStatus.
type StatusUpdate struct {
	Message QueueMessage
	// Campaign is the owning campaign after recalculation; zero if it was deleted.
	Campaign Campaign
	// CampaignCompleted is set when this update moved the campaign to completed.
	CampaignCompleted bool
}

type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is what clients read before deciding whether to show the login screen.
type Session struct {
	Hydrated        bool  `json:"hydrated"`
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *User `json:"user"`
}

// Snapshot is the persisted blob.
type Snapshot struct {
	IsAuthenticated bool           `json:"isAuthenticated"`
	User            *User          `json:"user"`
	Campaigns       []Campaign     `json:"campaigns"`
	QueueMessages   []QueueMessage `json:"queueMessages"`
}

type NewCampaign struct {
	Name       string
	Message    string
	Recipients []string
}

// CampaignUpdate holds optional edits. Recipients may only change before launch.
type CampaignUpdate struct {
	Name       *string
	Message    *string
	Recipients []string
}

// QueueFilter narrows QueueMessages; zero values match everything.
type QueueFilter struct {
	CampaignID string
	Status     MessageStatus
}

type QueueStats struct {
	Total     int `json:"total"`
	Queued    int `json:"queued"`
	Sending   int `json:"sending"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}
