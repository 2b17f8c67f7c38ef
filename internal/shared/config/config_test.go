package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, ":8080", cfg.GetServerAddress())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Contains(t, cfg.Database.DSN, "dbname=voyago_db")
	assert.Equal(t, 2, cfg.Booking.CancellationMinLeadDays)
	assert.Equal(t, "USD", cfg.Booking.DefaultCurrency)
	assert.Equal(t, 5*time.Second, cfg.Booking.LockWaitTimeout)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, time.UTC, cfg.BookingLocation())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_VERSION", "v2")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("JWT_EXPIRES_IN", "120")
	t.Setenv("BOOKING_LOCK_WAIT_TIMEOUT", "250ms")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("RATE_LIMIT_WHITELISTED_IPS", "10.0.0.1")
	t.Setenv("BOOKING_TIMEZONE", "Africa/Cairo")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/api/v2", cfg.GetAPIBasePath())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Minute, cfg.JWT.JWTExpiresIn)
	assert.Equal(t, 250*time.Millisecond, cfg.Booking.LockWaitTimeout)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"10.0.0.1"}, cfg.RateLimit.WhitelistedIPs)
	assert.Equal(t, "Africa/Cairo", cfg.BookingLocation().String())
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("CANCELLATION_MIN_LEAD_DAYS", "two")
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")
	t.Setenv("READ_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 2, cfg.Booking.CancellationMinLeadDays)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
}

func TestBookingLocation_UnknownZoneIsUTC(t *testing.T) {
	cfg := &Config{Booking: BookingConfig{TimeZone: "Mars/Olympus"}}
	assert.Equal(t, time.UTC, cfg.BookingLocation())
}
