package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var (
	ErrMissingToken = errors.New("BOT_TOKEN must not be empty")
	ErrMissingAdmin = errors.New("ADMIN_ID must be a non-zero chat id")
	ErrBadAckDelay  = errors.New("ACK_DELAY must be positive")
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken    string        `envconfig:"BOT_TOKEN" required:"true"`
	AdminID     int64         `envconfig:"ADMIN_ID" required:"true"`
	AckDelay    time.Duration `envconfig:"ACK_DELAY" default:"30s"`    // quiet period before "received"
	SendTimeout time.Duration `envconfig:"SEND_TIMEOUT" default:"10s"` // per outbound Telegram call
	DBPath      string        `envconfig:"DB_PATH" default:"./data/relay.db"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr    string        `envconfig:"HTTP_ADDR" default:":8080"`
}

// Load reads an optional .env file and then environment variables into Config.
func Load() (Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot express.
func (c Config) Validate() error {
	if c.BotToken == "" {
		return ErrMissingToken
	}
	if c.AdminID == 0 {
		return ErrMissingAdmin
	}
	if c.AckDelay <= 0 {
		return ErrBadAckDelay
	}
	return nil
}
