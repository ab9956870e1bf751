package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"4h"`

	// FontDir holds the optional unicode fonts for PDF export; missing
	// fonts degrade to the built-in core fonts.
	FontDir string `envconfig:"FONT_DIR" default:"./fonts"`

	// BrandFooterRef is the URL or path of the footer mark stamped on
	// every invoice.
	BrandFooterRef string `envconfig:"BRAND_FOOTER_REF" default:"./assets/brand-footer.png"`

	RelayURL       string `envconfig:"RELAY_URL" required:"true"`
	RelayServiceID string `envconfig:"RELAY_SERVICE_ID" required:"true"`
	RelayTemplate  string `envconfig:"RELAY_TEMPLATE_ID" required:"true"`
	RelayPublicKey string `envconfig:"RELAY_PUBLIC_KEY" required:"true"`

	MailMaxAttachmentBytes int `envconfig:"MAIL_MAX_ATTACHMENT_BYTES" default:"50000"`

	RateLimit       int           `envconfig:"RATE_LIMIT" default:"120"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
