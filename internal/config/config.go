package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP_PORT  string `env:"HTTP_PORT"`
	DB_STRING  string `env:"DB_STRING"`
	PRODUCTION bool   `env:"PRODUCTION"`

	KAFKA_BROKERS      string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC        string `env:"KAFKA_TOPIC"`
	KAFKA_GROUP_ID     string `env:"KAFKA_GROUP_ID"`
	KAFKA_EVENTS_TOPIC string `env:"KAFKA_EVENTS_TOPIC"`

	PHOTO_DIR       string `env:"PHOTO_DIR"`
	PHOTO_BASE_URL  string `env:"PHOTO_BASE_URL"`
	PHOTO_MAX_BYTES int64  `env:"PHOTO_MAX_BYTES"`

	SESSION_TTL time.Duration `env:"SESSION_TTL"`
}

// LoadConfig reads the environment, after loading .env when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the config from any env-like lookup.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(k, def string) string {
		if v, ok := lookup(k); ok && v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		HTTP_PORT:          get("HTTP_PORT", "8080"),
		DB_STRING:          get("DB_STRING", ""),
		KAFKA_BROKERS:      get("KAFKA_BROKERS", ""),
		KAFKA_TOPIC:        get("KAFKA_TOPIC", "orders"),
		KAFKA_GROUP_ID:     get("KAFKA_GROUP_ID", "shipping-service"),
		KAFKA_EVENTS_TOPIC: get("KAFKA_EVENTS_TOPIC", "shipment-events"),
		PHOTO_DIR:          get("PHOTO_DIR", "./data/photos"),
	}
	cfg.PHOTO_BASE_URL = get("PHOTO_BASE_URL", "http://localhost:"+cfg.HTTP_PORT+"/photos")

	if cfg.DB_STRING == "" {
		return nil, errors.New("DB_STRING is required")
	}

	var err error
	if cfg.PRODUCTION, err = strconv.ParseBool(get("PRODUCTION", "false")); err != nil {
		return nil, fmt.Errorf("invalid PRODUCTION: %w", err)
	}
	if cfg.PHOTO_MAX_BYTES, err = strconv.ParseInt(get("PHOTO_MAX_BYTES", "10485760"), 10, 64); err != nil || cfg.PHOTO_MAX_BYTES <= 0 {
		return nil, fmt.Errorf("invalid PHOTO_MAX_BYTES %q", get("PHOTO_MAX_BYTES", ""))
	}
	if cfg.SESSION_TTL, err = time.ParseDuration(get("SESSION_TTL", "12h")); err != nil || cfg.SESSION_TTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %q", get("SESSION_TTL", ""))
	}

	return cfg, nil
}

// KafkaEnabled reports whether brokers were configured.
func (c *Config) KafkaEnabled() bool {
	return c.KAFKA_BROKERS != ""
}
