// Package gateway holds the provider-neutral types exchanged with SMS gateways.
package gateway

import (
	"context"
	"strings"
	"time"
)

// Message types reported by httpSMS.
const (
	TypeMobileOriginated = "mobile-originated"
	TypeMobileTerminated = "mobile-terminated"
)

// Outbound is one message to hand to a gateway.
type Outbound struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Content string `json:"content"`
}

// Receipt is the gateway's answer to a send. A receipt without an ID is a
// rejection and Error carries the gateway's explanation.
type Receipt struct {
	ID     string
	Status string
	Error  string
}

// Accepted reports whether the gateway took the message.
func (r Receipt) Accepted() bool {
	return r.ID != ""
}

// Thread is one remote conversation for the owning number.
type Thread struct {
	ID      string `json:"id"`
	Owner   string `json:"owner"`
	Contact string `json:"contact"`
}

// Message is one remote message inside a thread.
type Message struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Contact   string    `json:"contact"`
	From      string    `json:"from,omitempty"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Sender returns the address that sent the message. An explicit From wins;
// otherwise the message type decides between owner and contact, and an
// unknown type is attributed to the contact.
func (m Message) Sender() string {
	if m.From != "" {
		return m.From
	}
	if strings.EqualFold(m.Type, TypeMobileTerminated) {
		return m.Owner
	}
	return m.Contact
}

// Sender delivers outbound messages.
type Sender interface {
	Send(ctx context.Context, msg Outbound) (Receipt, error)
}

// Inbox lists remote threads and messages for polling.
type Inbox interface {
	ListThreads(ctx context.Context, owner string) ([]Thread, error)
	ListMessages(ctx context.Context, owner, contact string, skip, limit int) ([]Message, error)
}
