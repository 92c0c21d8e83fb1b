package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"DB_STRING": "postgres://x"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP_PORT)
	assert.Equal(t, "orders", cfg.KAFKA_TOPIC)
	assert.Equal(t, "shipment-events", cfg.KAFKA_EVENTS_TOPIC)
	assert.Equal(t, "http://localhost:8080/photos", cfg.PHOTO_BASE_URL)
	assert.Equal(t, int64(10<<20), cfg.PHOTO_MAX_BYTES)
	assert.Equal(t, 12*time.Hour, cfg.SESSION_TTL)
	assert.False(t, cfg.KafkaEnabled())
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DB_STRING":     "postgres://x",
		"HTTP_PORT":     "9000",
		"KAFKA_BROKERS": "k1:9092,k2:9092",
		"SESSION_TTL":   "30m",
		"PRODUCTION":    "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/photos", cfg.PHOTO_BASE_URL)
	assert.Equal(t, 30*time.Minute, cfg.SESSION_TTL)
	assert.True(t, cfg.PRODUCTION)
	assert.True(t, cfg.KafkaEnabled())
}

func TestFromLookupErrors(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{}))
	assert.Error(t, err)

	_, err = FromLookup(lookupFrom(map[string]string{"DB_STRING": "x", "SESSION_TTL": "soon"}))
	assert.Error(t, err)

	_, err = FromLookup(lookupFrom(map[string]string{"DB_STRING": "x", "PHOTO_MAX_BYTES": "-1"}))
	assert.Error(t, err)
}
