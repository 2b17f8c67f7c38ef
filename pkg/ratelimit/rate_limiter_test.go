package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, cfg *Config) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimiter(client, cfg), mr
}

func testConfig() *Config {
	return &Config{
		Enabled:                 true,
		WindowDuration:          time.Minute,
		DefaultRequests:         5,
		PublicRequests:          5,
		BookingCriticalRequests: 2,
		AdminRequests:           5,
		UserRequests:            5,
		HealthRequests:          5,
		WhitelistedIPs:          []string{"10.0.0.1"},
	}
}

func TestIsAllowed_SlidingWindow(t *testing.T) {
	rl, mr := newLimiter(t, testConfig())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := rl.IsAllowed(ctx, "1.2.3.4", RateLimitTypeBookingCritical)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1-i, res.Remaining)
	}

	res, err := rl.IsAllowed(ctx, "1.2.3.4", RateLimitTypeBookingCritical)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 2, res.Limit)

	// other clients and classes have their own windows
	res, err = rl.IsAllowed(ctx, "5.6.7.8", RateLimitTypeBookingCritical)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	res, err = rl.IsAllowed(ctx, "1.2.3.4", RateLimitTypePublic)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	assert.True(t, mr.Exists("voyago:ratelimit:1.2.3.4:booking_critical"))
}

func TestIsAllowed_WhitelistAndDisabled(t *testing.T) {
	rl, mr := newLimiter(t, testConfig())
	for i := 0; i < 10; i++ {
		res, err := rl.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeBookingCritical)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	assert.Empty(t, mr.Keys())

	cfg := testConfig()
	cfg.Enabled = false
	rl, _ = newLimiter(t, cfg)
	for i := 0; i < 10; i++ {
		res, err := rl.IsAllowed(context.Background(), "1.2.3.4", RateLimitTypeBookingCritical)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
}

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		path string
		want RateLimitType
	}{
		{"/health", RateLimitTypeHealth},
		{"/metrics", RateLimitTypeHealth},
		{"/api/v1/admin/listings", RateLimitTypeAdmin},
		{"/api/v1/admin/orders/:id/status", RateLimitTypeAdmin},
		{"/api/v1/itineraries/:id/book", RateLimitTypeBookingCritical},
		{"/api/v1/activities/:id/cancel", RateLimitTypeBookingCritical},
		{"/api/v1/tourist/:id/orders/:orderId/cancel", RateLimitTypeBookingCritical},
		{"/api/v1/orders/checkout", RateLimitTypeBookingCritical},
		{"/api/v1/orders/:id", RateLimitTypeBooking},
		{"/api/v1/users/wallet", RateLimitTypeBooking},
		{"/api/v1/listings/:id", RateLimitTypePublic},
		{"/api/v1/products", RateLimitTypePublic},
		{"/api/v1/users/bookings", RateLimitTypeUser},
		{"/swagger/*any", RateLimitTypeDefault},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, getRateLimitType(tt.path))
		})
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, _ := newLimiter(t, testConfig())

	r := gin.New()
	r.Use(Middleware(rl))
	r.POST("/api/v1/activities/:id/book", func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/activities/x/book", nil)
		req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}
