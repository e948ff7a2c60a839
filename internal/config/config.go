// Package config resolves the deployment configuration once at startup.
// Components receive it by reference and never read the environment
// themselves.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full deployment configuration.
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"NODE_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"INFO"`
	// Serverless selects the /api base-path prefix and keeps the
	// process alive when mail credentials are missing.
	Serverless bool `envconfig:"SERVERLESS" default:"false"`

	Mail      MailConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// MailConfig holds the relay credentials and the operator inbox.
type MailConfig struct {
	// Service selects the transport: "smtp" or "relay".
	Service  string `envconfig:"EMAIL_SERVICE" default:"smtp"`
	SMTPHost string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"EMAIL_USER"`
	Password string `envconfig:"EMAIL_PASSWORD"`
	// Recipient is the operator inbox every submission is forwarded to.
	Recipient string `envconfig:"SENDER_EMAIL"`
	Subject   string `envconfig:"EMAIL_SUBJECT" default:"New Submission from Portfolio website"`

	RelayURL   string `envconfig:"RELAY_URL"`
	RelayToken string `envconfig:"RELAY_TOKEN"`
}

// CORSConfig holds the cross-origin access policy.
type CORSConfig struct {
	Origin  string `envconfig:"ALLOWED_ORIGIN" default:"*"`
	Methods string `envconfig:"ALLOWED_METHODS" default:"GET,POST,OPTIONS"`
	Headers string `envconfig:"ALLOWED_HEADERS" default:"Content-Type,Authorization"`
}

// RateLimitConfig holds the per-tier window/threshold overrides.
type RateLimitConfig struct {
	TrustedProxies int `envconfig:"TRUSTED_PROXIES" default:"1"`

	GeneralWindow time.Duration `envconfig:"GENERAL_WINDOW" default:"15m"`
	GeneralMax    int           `envconfig:"GENERAL_MAX_REQUESTS" default:"100"`
	EmailWindow   time.Duration `envconfig:"EMAIL_WINDOW" default:"1h"`
	EmailMax      int           `envconfig:"EMAIL_MAX_REQUESTS" default:"5"`
	HealthWindow  time.Duration `envconfig:"HEALTH_WINDOW" default:"1m"`
	HealthMax     int           `envconfig:"HEALTH_MAX_REQUESTS" default:"30"`
	StrictWindow  time.Duration `envconfig:"STRICT_WINDOW" default:"5m"`
	StrictMax     int           `envconfig:"STRICT_MAX_REQUESTS" default:"3"`
}

// Load reads .env if present, then populates Config from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Production reports whether the process runs in production mode.
// Rate limiting is enforced and error detail is hidden only there.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// MailConfigured reports whether enough relay settings are present to
// construct a sender.
func (c *Config) MailConfigured() bool {
	if c.Mail.Service == "relay" {
		return c.Mail.RelayURL != "" && c.Mail.Recipient != ""
	}
	return c.Mail.User != "" && c.Mail.Password != "" && c.Mail.Recipient != ""
}

// FromAddress returns the envelope sender for outbound mail. The relay
// transport does not require EMAIL_USER, so the operator inbox doubles
// as the from-address when no account user is set.
func (c *Config) FromAddress() string {
	if c.Mail.User != "" {
		return c.Mail.User
	}
	return c.Mail.Recipient
}

// MissingMailVars lists the unset variables the mail transport needs.
func (c *Config) MissingMailVars() []string {
	var missing []string
	if c.Mail.Service == "relay" {
		if c.Mail.RelayURL == "" {
			missing = append(missing, "RELAY_URL")
		}
	} else {
		if c.Mail.User == "" {
			missing = append(missing, "EMAIL_USER")
		}
		if c.Mail.Password == "" {
			missing = append(missing, "EMAIL_PASSWORD")
		}
	}
	if c.Mail.Recipient == "" {
		missing = append(missing, "SENDER_EMAIL")
	}
	return missing
}
