package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the bot reads from the environment
type Config struct {
	// Env selects the logger flavor ("production" or anything else)
	Env string `mapstructure:"ENV"`

	// Port the HTTP server listens on
	Port string `mapstructure:"PORT"`

	// DatabaseURL is the Postgres DSN; empty keeps reservations in memory
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// RedisAddr enables the shared per-sender lock; empty uses an in-process lock
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// StorageTimeout bounds every storage call made while handling a message
	StorageTimeout time.Duration `mapstructure:"STORAGE_TIMEOUT"`

	// Twilio WhatsApp credentials; the webhook is disabled when missing
	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFrom       string `mapstructure:"TWILIO_FROM"`

	// DiscordToken enables the Discord DM transport
	DiscordToken string `mapstructure:"DISCORD_TOKEN"`

	// Optional application and guild IDs for registering the slash command
	DiscordApplicationID string `mapstructure:"DISCORD_APPLICATION_ID"`
	DiscordGuildID       string `mapstructure:"DISCORD_GUILD_ID"`

	// ShutdownTimeout bounds draining queued messages on exit
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var keys = []string{
	"ENV", "PORT", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"STORAGE_TIMEOUT", "TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_FROM",
	"DISCORD_TOKEN", "DISCORD_APPLICATION_ID", "DISCORD_GUILD_ID", "SHUTDOWN_TIMEOUT",
}

// Load reads an optional .env file and then the environment
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("STORAGE_TIMEOUT", "5s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("TWILIO_FROM", "whatsapp:+14155238886")

	// AutomaticEnv only answers Get; Unmarshal needs every key bound.
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the bot cannot run with
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT cannot be empty")
	}
	if c.StorageTimeout <= 0 {
		return errors.New("STORAGE_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether the bot runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DiscordEnabled reports whether a Discord bot token was provided
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

// TwilioEnabled reports whether WhatsApp credentials were provided
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}
