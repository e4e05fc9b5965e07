package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrEmptyEnvironmentVariable = errors.New("empty environment variable")
	ErrMissingConfiguration     = errors.New("missing configuration")
)

const (
	ProviderHTTPSMS = "httpsms"
	ProviderTwilio  = "twilio"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Gateway  GatewayConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Poll     PollConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// GatewayConfig holds the SMS gateway settings. FromPhone is the owning number
// used both as the sender of outbound messages and the owner filter for polling.
type GatewayConfig struct {
	Provider         string
	BaseURL          string
	APIKey           string
	FromPhone        string
	Timeout          time.Duration
	TwilioAccountSID string
	TwilioAuthToken  string
}

// RedisConfig holds the settings for the persisted app-state blob
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	StateKey string
}

// KafkaConfig holds event streaming configuration. Empty Brokers disables publishing.
type KafkaConfig struct {
	Brokers string
}

// PollConfig holds the inbound poller schedule
type PollConfig struct {
	Enabled  bool
	Interval time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// Load reads all environment variables. Inbox settings are not fatal here;
// MissingInboxSettings reports them so the poll surface can name what is absent.
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}
	var err error

	cfg.Database.Host = os.Getenv("DB_HOST")
	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Database.Username = getEnvWithDefault("DB_USERNAME", "postgres")
	cfg.Database.Name = getEnvWithDefault("DB_NAME", "blastsms")

	cfg.Gateway.Provider = strings.ToLower(getEnvWithDefault("SMS_PROVIDER", ProviderHTTPSMS))
	cfg.Gateway.BaseURL = getEnvWithDefault("HTTPSMS_BASE_URL", "https://api.httpsms.com")
	cfg.Gateway.APIKey = os.Getenv("HTTPSMS_API_KEY")
	cfg.Gateway.FromPhone = os.Getenv("HTTPSMS_FROM_PHONE")
	if cfg.Gateway.Timeout, err = time.ParseDuration(getEnvWithDefault("GATEWAY_TIMEOUT", "15s")); err != nil {
		return nil, fmt.Errorf("failed to parse GATEWAY_TIMEOUT: %w", err)
	}
	switch cfg.Gateway.Provider {
	case ProviderHTTPSMS:
	case ProviderTwilio:
		if cfg.Gateway.TwilioAccountSID, err = requireEnv("TWILIO_ACCOUNT_SID"); err != nil {
			return nil, err
		}
		if cfg.Gateway.TwilioAuthToken, err = requireEnv("TWILIO_AUTH_TOKEN"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported SMS_PROVIDER %q", cfg.Gateway.Provider)
	}

	// Redis configuration
	cfg.Redis.Enabled, err = strconv.ParseBool(getEnvWithDefault("REDIS_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_ENABLED: %w", err)
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = strconv.Atoi(getEnvWithDefault("REDIS_PORT", "6379")); err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_PORT: %w", err)
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = strconv.Atoi(getEnvWithDefault("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
	}
	cfg.Redis.StateKey = getEnvWithDefault("STATE_KEY", "blastsms-store")

	cfg.Kafka.Brokers = os.Getenv("KAFKA_BROKERS")

	// Poll configuration
	cfg.Poll.Enabled, err = strconv.ParseBool(getEnvWithDefault("POLL_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse POLL_ENABLED: %w", err)
	}
	if cfg.Poll.Interval, err = time.ParseDuration(getEnvWithDefault("POLL_INTERVAL", "30s")); err != nil {
		return nil, fmt.Errorf("failed to parse POLL_INTERVAL: %w", err)
	}
	if cfg.Poll.Interval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", cfg.Poll.Interval)
	}

	// Server configuration
	if cfg.Server.Port, err = strconv.Atoi(getEnvWithDefault("SERVER_PORT", "8080")); err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.AllowedOrigins = splitList(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	return cfg, nil
}

// MissingInboxSettings names the environment variables the inbound poller
// needs that are not set: store URL, store key, gateway key and owning phone.
func (c *Config) MissingInboxSettings() []string {
	var missing []string
	if c.Database.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.Database.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if c.Gateway.APIKey == "" {
		missing = append(missing, "HTTPSMS_API_KEY")
	}
	if c.Gateway.FromPhone == "" {
		missing = append(missing, "HTTPSMS_FROM_PHONE")
	}
	return missing
}

// RequireInbox returns ErrMissingConfiguration naming every absent inbox setting.
func (c *Config) RequireInbox() error {
	missing := c.MissingInboxSettings()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingConfiguration, strings.Join(missing, ", "))
}

// KafkaBrokers returns the configured broker list, empty when publishing is disabled.
func (c *KafkaConfig) KafkaBrokers() []string {
	return splitList(c.Brokers)
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
