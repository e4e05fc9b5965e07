// Package appstate owns the campaign and send-queue state. All mutations go
// through one method per operation and are written through to a Persister
// as a single blob.
package appstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"blastsms/internal/observability"

	"github.com/google/uuid"
)

var (
	ErrNotHydrated       = errors.New("state not hydrated")
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrMessageNotFound   = errors.New("queue message not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrAlreadyLaunched   = errors.New("campaign already launched")
	ErrNotLaunched       = errors.New("campaign not launched")
	ErrNoRecipients      = errors.New("campaign has no recipients")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidCampaign   = errors.New("campaign name and message are required")
	ErrStatusTransition  = errors.New("status transition not allowed")
	errPersistenceFailed = errors.New("failed to persist state")
	errReadOnly          = errors.New("persisted state was not read; saving disabled")
)

// State is the application state object. It is safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	snap      Snapshot
	hydrated  bool
	readOnly  bool
	persister Persister
	logger    *observability.Logger
	now       func() time.Time
}

type Option func(*State)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

func New(persister Persister, logger *observability.Logger, opts ...Option) *State {
	s := &State{
		persister: persister,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads the persisted snapshot. The hydrated flag is set even when
// loading fails so callers never wait forever; the state then starts empty
// and the load error is returned for logging.
//
// A snapshot that cannot be decoded is replaced by the next save. A snapshot
// that could not be read at all is left alone: the state stays read-only
// until a later Hydrate call reads it successfully.
func (s *State) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() { s.hydrated = true }()

	blob, err := s.persister.Load(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		s.readOnly = false
		s.logger.Info(ctx, "no persisted state found, starting empty")
		return nil
	}
	if err != nil {
		s.readOnly = true
		s.logger.Error(ctx, "failed to load persisted state", err)
		return fmt.Errorf("failed to load persisted state: %w", err)
	}
	s.readOnly = false

	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		s.logger.Error(ctx, "failed to decode persisted state", err)
		return fmt.Errorf("failed to decode persisted state: %w", err)
	}
	s.snap = snap
	s.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "campaigns", Value: len(snap.Campaigns)},
		observability.Field{Key: "queue_messages", Value: len(snap.QueueMessages)},
	), "state hydrated")
	return nil
}

func (s *State) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// ReadOnly reports whether saving is disabled because the persisted
// snapshot could not be read.
func (s *State) ReadOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readOnly
}

// Close writes the final snapshot.
func (s *State) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated || s.readOnly {
		return nil
	}
	return s.persistLocked(ctx)
}

// Session reports the auth flag. Until hydration completes it reports
// Hydrated=false and no user.
func (s *State) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hydrated {
		return Session{}
	}
	return Session{
		Hydrated:        true,
		IsAuthenticated: s.snap.IsAuthenticated,
		User:            cloneUser(s.snap.User),
	}
}

// Login is a mock sign-in: any well-formed email is accepted and the display
// name is its local part.
func (s *State) Login(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return User{}, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return User{}, ErrNotHydrated
	}

	user := User{Email: email, Name: local}
	s.snap.IsAuthenticated = true
	s.snap.User = &user
	s.persistBestEffort(ctx)
	return user, nil
}

func (s *State) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return ErrNotHydrated
	}
	s.snap.IsAuthenticated = false
	s.snap.User = nil
	s.persistBestEffort(ctx)
	return nil
}

// CreateCampaign adds a draft campaign at the front of the list.
func (s *State) CreateCampaign(ctx context.Context, params NewCampaign) (Campaign, error) {
	if strings.TrimSpace(params.Name) == "" || strings.TrimSpace(params.Message) == "" {
		return Campaign{}, ErrInvalidCampaign
	}
	if len(params.Recipients) == 0 {
		return Campaign{}, ErrNoRecipients
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return Campaign{}, ErrNotHydrated
	}

	campaign := Campaign{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(params.Name),
		Message:        params.Message,
		Recipients:     append([]string(nil), params.Recipients...),
		RecipientCount: len(params.Recipients),
		Status:         CampaignStatusDraft,
		CreatedAt:      s.now(),
	}
	s.snap.Campaigns = append([]Campaign{campaign}, s.snap.Campaigns...)
	s.persistBestEffort(ctx)
	return cloneCampaign(campaign), nil
}

// UpdateCampaign edits a campaign. Queue entries already generated keep the
// text they were launched with.
func (s *State) UpdateCampaign(ctx context.Context, id string, params CampaignUpdate) (Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return Campaign{}, ErrNotHydrated
	}

	idx := s.campaignIndexLocked(id)
	if idx < 0 {
		return Campaign{}, ErrCampaignNotFound
	}
	campaign := s.snap.Campaigns[idx]

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return Campaign{}, ErrInvalidCampaign
		}
		campaign.Name = strings.TrimSpace(*params.Name)
	}
	if params.Message != nil {
		if strings.TrimSpace(*params.Message) == "" {
			return Campaign{}, ErrInvalidCampaign
		}
		campaign.Message = *params.Message
	}
	if params.Recipients != nil {
		if campaign.Status != CampaignStatusDraft {
			return Campaign{}, ErrAlreadyLaunched
		}
		if len(params.Recipients) == 0 {
			return Campaign{}, ErrNoRecipients
		}
		campaign.Recipients = append([]string(nil), params.Recipients...)
		campaign.RecipientCount = len(params.Recipients)
	}

	s.snap.Campaigns[idx] = campaign
	s.persistBestEffort(ctx)
	return cloneCampaign(campaign), nil
}

// DeleteCampaign removes the campaign and every queue entry it generated.
func (s *State) DeleteCampaign(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return ErrNotHydrated
	}

	idx := s.campaignIndexLocked(id)
	if idx < 0 {
		return ErrCampaignNotFound
	}
	s.snap.Campaigns = append(s.snap.Campaigns[:idx:idx], s.snap.Campaigns[idx+1:]...)

	kept := s.snap.QueueMessages[:0:0]
	for _, m := range s.snap.QueueMessages {
		if m.CampaignID != id {
			kept = append(kept, m)
		}
	}
	s.snap.QueueMessages = kept
	s.persistBestEffort(ctx)
	return nil
}

// LaunchCampaign generates one queued message per recipient, copying the
// campaign text as it is now, and prepends the batch to the queue.
func (s *State) LaunchCampaign(ctx context.Context, id string) (Campaign, []QueueMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return Campaign{}, nil, ErrNotHydrated
	}

	idx := s.campaignIndexLocked(id)
	if idx < 0 {
		return Campaign{}, nil, ErrCampaignNotFound
	}
	campaign := s.snap.Campaigns[idx]
	if campaign.Status != CampaignStatusDraft {
		return Campaign{}, nil, ErrAlreadyLaunched
	}
	if len(campaign.Recipients) == 0 {
		return Campaign{}, nil, ErrNoRecipients
	}

	now := s.now()
	batch := make([]QueueMessage, 0, len(campaign.Recipients))
	for i, recipient := range campaign.Recipients {
		batch = append(batch, QueueMessage{
			ID:           fmt.Sprintf("m_%s_%d", campaign.ID, i),
			CampaignID:   campaign.ID,
			CampaignName: campaign.Name,
			Recipient:    recipient,
			MessageText:  campaign.Message,
			Status:       MessageStatusQueued,
			Timestamp:    now,
		})
	}
	s.snap.QueueMessages = append(append([]QueueMessage(nil), batch...), s.snap.QueueMessages...)

	campaign.Status = CampaignStatusRunning
	campaign.RecipientCount = len(batch)
	campaign.Delivered, campaign.Failed, campaign.Sending = 0, 0, 0
	s.snap.Campaigns[idx] = campaign
	s.persistBestEffort(ctx)

	return cloneCampaign(campaign), batch, nil
}

// SetCampaignStatus moves a launched campaign between running and paused.
// Queue entries are not touched.
func (s *State) SetCampaignStatus(ctx context.Context, id string, status CampaignStatus) (Campaign, error) {
	if status != CampaignStatusRunning && status != CampaignStatusPaused {
		return Campaign{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return Campaign{}, ErrNotHydrated
	}

	idx := s.campaignIndexLocked(id)
	if idx < 0 {
		return Campaign{}, ErrCampaignNotFound
	}
	campaign := s.snap.Campaigns[idx]
	switch campaign.Status {
	case CampaignStatusDraft:
		return Campaign{}, ErrNotLaunched
	case CampaignStatusCompleted:
		return Campaign{}, ErrStatusTransition
	}

	campaign.Status = status
	s.snap.Campaigns[idx] = campaign
	s.persistBestEffort(ctx)
	return cloneCampaign(campaign), nil
}

func (s *State) Campaigns() []Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Campaign, 0, len(s.snap.Campaigns))
	for _, c := range s.snap.Campaigns {
		out = append(out, cloneCampaign(c))
	}
	return out
}

func (s *State) Campaign(id string) (Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.campaignIndexLocked(id)
	if idx < 0 {
		return Campaign{}, ErrCampaignNotFound
	}
	return cloneCampaign(s.snap.Campaigns[idx]), nil
}

// QueuedMessages returns the messages still waiting, in queue order.
func (s *State) QueuedMessages() []QueueMessage {
	return s.QueueMessages(QueueFilter{Status: MessageStatusQueued})
}

func (s *State) QueueMessages(filter QueueFilter) []QueueMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]QueueMessage, 0)
	for _, m := range s.snap.QueueMessages {
		if filter.CampaignID != "" && m.CampaignID != filter.CampaignID {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *State) QueueStats() QueueStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stats QueueStats
	for _, m := range s.snap.QueueMessages {
		stats.Total++
		switch m.Status {
		case MessageStatusQueued:
			stats.Queued++
		case MessageStatusSending:
			stats.Sending++
		case MessageStatusDelivered:
			stats.Delivered++
		case MessageStatusFailed:
			stats.Failed++
		}
	}
	return stats
}

// UpdateMessageStatus is the single entry point for queue status changes.
// After the change the owning campaign's counters are recalculated. A message
// removed by a clear or a campaign deletion yields ErrMessageNotFound and is
// never recreated.
func (s *State) UpdateMessageStatus(ctx context.Context, id string, status MessageStatus, update MessageUpdate) (StatusUpdate, error) {
	if !status.Valid() {
		return StatusUpdate{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return StatusUpdate{}, ErrNotHydrated
	}

	msgIdx := -1
	for i := range s.snap.QueueMessages {
		if s.snap.QueueMessages[i].ID == id {
			msgIdx = i
			break
		}
	}
	if msgIdx < 0 {
		return StatusUpdate{}, ErrMessageNotFound
	}

	msg := s.snap.QueueMessages[msgIdx]
	msg.Status = status
	msg.Timestamp = s.now()
	msg.Error = update.Error
	if update.APISuccess != nil {
		success := *update.APISuccess
		msg.APISuccess = &success
	}
	if update.TextID != "" {
		msg.TextID = update.TextID
	}
	if update.DeliveryStatus != "" {
		msg.DeliveryStatus = update.DeliveryStatus
	}
	s.snap.QueueMessages[msgIdx] = msg

	result := StatusUpdate{Message: msg}
	if campIdx := s.campaignIndexLocked(msg.CampaignID); campIdx >= 0 {
		before := s.snap.Campaigns[campIdx]
		after := Recalculate(s.snap.QueueMessages)[msg.CampaignID].Apply(before)
		s.snap.Campaigns[campIdx] = after
		result.Campaign = cloneCampaign(after)
		result.CampaignCompleted = before.Status != CampaignStatusCompleted && after.Status == CampaignStatusCompleted
	}

	s.persistBestEffort(ctx)
	return result, nil
}

// ClearQueue drops every queue entry. Campaign counters keep their last values.
func (s *State) ClearQueue(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return ErrNotHydrated
	}
	s.snap.QueueMessages = nil
	s.persistBestEffort(ctx)
	return nil
}

func (s *State) campaignIndexLocked(id string) int {
	for i := range s.snap.Campaigns {
		if s.snap.Campaigns[i].ID == id {
			return i
		}
	}
	return -1
}

// persistBestEffort writes the snapshot; failures are logged and the
// in-memory state stays authoritative.
func (s *State) persistBestEffort(ctx context.Context) {
	if err := s.persistLocked(ctx); err != nil {
		s.logger.Error(ctx, "failed to persist state", err)
	}
}

func (s *State) persistLocked(ctx context.Context) error {
	if s.readOnly {
		return errReadOnly
	}
	blob, err := json.Marshal(s.snap)
	if err != nil {
		return fmt.Errorf("%w: %v", errPersistenceFailed, err)
	}
	if err := s.persister.Save(ctx, blob); err != nil {
		return fmt.Errorf("%w: %v", errPersistenceFailed, err)
	}
	return nil
}

func cloneCampaign(c Campaign) Campaign {
	c.Recipients = append([]string(nil), c.Recipients...)
	return c
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	copied := *u
	return &copied
}
