package bootstrap

import (
	"context"
	"fmt"
	"time"

	"blastsms/internal/appstate"
	"blastsms/internal/clients/httpsms"
	"blastsms/internal/clients/redis"
	"blastsms/internal/clients/twilio"
	"blastsms/internal/config"
	"blastsms/internal/events"
	"blastsms/internal/kafka"
	"blastsms/internal/observability"
	"blastsms/internal/store"

	analyticsHandler "blastsms/internal/analytics/handler"
	analyticsProcessor "blastsms/internal/analytics/processor"
	authHandler "blastsms/internal/auth/handler"
	campaignHandler "blastsms/internal/campaign/handler"
	campaignProcessor "blastsms/internal/campaign/processor"
	contactsHandler "blastsms/internal/contacts/handler"
	contactsProcessor "blastsms/internal/contacts/processor"
	inboxHandler "blastsms/internal/inbox/handler"
	inboxProcessor "blastsms/internal/inbox/processor"
	queueHandler "blastsms/internal/queue/handler"
	queueProcessor "blastsms/internal/queue/processor"
	smsHandler "blastsms/internal/sms/handler"
	smsProcessor "blastsms/internal/sms/processor"
)

const stateReloadInterval = 30 * time.Second

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Logger *observability.Logger
	State  *appstate.State
	// Store is nil when the database is not configured.
	Store *store.Store

	// Handlers
	AuthHandler      authHandler.Handler
	SMSHandler       smsHandler.Handler
	QueueHandler     queueHandler.Handler
	InboxHandler     inboxHandler.Handler
	ContactsHandler  contactsHandler.Handler
	CampaignHandler  campaignHandler.Handler
	AnalyticsHandler analyticsHandler.Handler

	// Background work
	QueueRunner *queueProcessor.Runner
	PollJob     *inboxProcessor.PollJob
	ReloadJob   *appstate.ReloadJob

	// Clients (for cleanup)
	Redis         *redis.Client
	KafkaProducer *kafka.Producer
}

// Initialize sets up all application dependencies and hydrates the app state.
// Missing gateway or database settings do not fail startup; the endpoints that
// need them report the absent variables instead.
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	var err error
	deps.Redis, err = redis.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	var persister appstate.Persister = appstate.NewMemoryPersister()
	if deps.Redis.IsEnabled() {
		persister = appstate.NewRedisPersister(deps.Redis, cfg.Redis.StateKey)
	}
	deps.State = appstate.New(persister, logger)
	if err := deps.State.Hydrate(ctx); err != nil {
		if deps.State.ReadOnly() {
			logger.Error(ctx, "persisted state unreadable, serving read-only until reload succeeds", err)
		} else {
			logger.Error(ctx, "starting with empty state", err)
		}
	}
	deps.ReloadJob = appstate.NewReloadJob(deps.State, stateReloadInterval)

	if err := deps.initStore(cfg); err != nil {
		return nil, err
	}

	publisher := deps.initPublisher(cfg)

	sender := newSender(cfg, logger)
	var mirror smsProcessor.MirrorStore
	if deps.Store != nil {
		mirror = deps.Store
	}
	smsProc := smsProcessor.New(sender, mirror, cfg.Gateway.FromPhone, cfg.Gateway.Provider, logger)
	deps.SMSHandler = smsHandler.New(&smsProc, logger)

	queueProc := queueProcessor.New(deps.State, &smsProc, publisher, logger)
	deps.QueueRunner = queueProcessor.NewRunner(&queueProc, deps.State, logger)
	deps.QueueHandler = queueHandler.New(deps.QueueRunner, deps.State, logger)

	inboxProc := newInboxProcessor(cfg, deps.Store, &smsProc, publisher, logger)
	deps.InboxHandler = inboxHandler.New(&inboxProc, logger)
	deps.PollJob = inboxProcessor.NewPollJob(&inboxProc, cfg.Poll.Interval)

	var contactStore contactsProcessor.ContactStore
	if deps.Store != nil {
		contactStore = deps.Store
	}
	contactsProc := contactsProcessor.New(contactStore, logger)
	deps.ContactsHandler = contactsHandler.New(&contactsProc, logger)

	campaignProc := campaignProcessor.New(deps.State, deps.QueueRunner, logger)
	deps.CampaignHandler = campaignHandler.New(&campaignProc, logger)

	analyticsProc := analyticsProcessor.New(deps.State, logger)
	deps.AnalyticsHandler = analyticsHandler.New(&analyticsProc, logger)

	deps.AuthHandler = authHandler.New(deps.State, logger)

	return deps, nil
}

// InitializePoller builds only what the standalone poller needs. Unlike the
// API server it requires every inbox setting.
func InitializePoller(cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	if err := cfg.RequireInbox(); err != nil {
		return nil, err
	}

	deps := &Dependencies{Logger: logger}
	if err := deps.initStore(cfg); err != nil {
		return nil, err
	}
	publisher := deps.initPublisher(cfg)

	smsProc := smsProcessor.New(newSender(cfg, logger), deps.Store, cfg.Gateway.FromPhone, cfg.Gateway.Provider, logger)
	inboxProc := newInboxProcessor(cfg, deps.Store, &smsProc, publisher, logger)
	deps.PollJob = inboxProcessor.NewPollJob(&inboxProc, cfg.Poll.Interval)
	return deps, nil
}

func (d *Dependencies) initStore(cfg *config.Config) error {
	if cfg.Database.Host == "" || cfg.Database.Password == "" {
		d.Logger.Warn(context.Background(), "database not configured, contacts and inbox are disabled")
		return nil
	}
	st, err := store.New(cfg.Database.ConnectionString(), d.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	d.Store = &st
	return nil
}

func (d *Dependencies) initPublisher(cfg *config.Config) *events.Publisher {
	brokers := cfg.Kafka.KafkaBrokers()
	if len(brokers) == 0 {
		return events.NewPublisher(nil, d.Logger)
	}
	d.KafkaProducer = kafka.NewProducer(kafka.ProducerConfig{
		Brokers:     brokers,
		Compression: "snappy",
	}, d.Logger)
	return events.NewPublisher(d.KafkaProducer, d.Logger)
}

// newSender picks the outbound gateway. It returns nil when the selected
// provider has no credentials.
func newSender(cfg *config.Config, logger *observability.Logger) smsProcessor.Gateway {
	switch cfg.Gateway.Provider {
	case config.ProviderTwilio:
		return twilio.NewClient(cfg.Gateway.TwilioAccountSID, cfg.Gateway.TwilioAuthToken, logger)
	default:
		if cfg.Gateway.APIKey == "" {
			return nil
		}
		return httpsms.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout, logger)
	}
}

// newInboxProcessor wires the poller. Polling always goes through httpSMS,
// whichever provider sends.
func newInboxProcessor(cfg *config.Config, st *store.Store, replier inboxProcessor.Replier, publisher inboxProcessor.EventPublisher, logger *observability.Logger) inboxProcessor.InboxProcessor {
	var (
		gw         inboxProcessor.Gateway
		inboxStore inboxProcessor.InboxStore
	)
	if cfg.Gateway.APIKey != "" {
		gw = httpsms.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout, logger)
	}
	if st != nil {
		inboxStore = st
	}
	return inboxProcessor.New(gw, inboxStore, replier, publisher, inboxProcessor.Settings{
		OwnerPhone: cfg.Gateway.FromPhone,
		Missing:    cfg.MissingInboxSettings(),
	}, logger)
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup(ctx context.Context) {
	if d.State != nil {
		if err := d.State.Close(ctx); err != nil {
			d.Logger.Error(ctx, "failed to persist final state", err)
		}
	}
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close redis client", err)
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close database", err)
		}
	}
}
