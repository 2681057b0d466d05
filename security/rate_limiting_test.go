package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowFirstRequest(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(client, 10, time.Minute)

	mock.ExpectIncr("ratelimit:checkout:1.2.3.4").SetVal(1)
	mock.ExpectExpire("ratelimit:checkout:1.2.3.4", time.Minute).SetVal(true)

	assert.True(t, limiter.allow(context.Background(), "ratelimit:checkout:1.2.3.4"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(client, 10, time.Minute)

	mock.ExpectIncr("ratelimit:checkout:1.2.3.4").SetVal(10)

	assert.True(t, limiter.allow(context.Background(), "ratelimit:checkout:1.2.3.4"))
}

func TestRateLimiter_RejectOverLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(client, 10, time.Minute)

	mock.ExpectIncr("ratelimit:checkout:1.2.3.4").SetVal(11)

	assert.False(t, limiter.allow(context.Background(), "ratelimit:checkout:1.2.3.4"))
}

func TestRateLimiter_FailsOpenOnRedisError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(client, 10, time.Minute)

	mock.ExpectIncr("ratelimit:checkout:1.2.3.4").SetErr(errors.New("redis down"))

	assert.True(t, limiter.allow(context.Background(), "ratelimit:checkout:1.2.3.4"))
}

func TestIsSuspiciousUserAgent(t *testing.T) {
	assert.True(t, isSuspiciousUserAgent("Googlebot/2.1"))
	assert.True(t, isSuspiciousUserAgent("my-crawler"))
	assert.True(t, isSuspiciousUserAgent("WebScraper 1.0"))
	assert.False(t, isSuspiciousUserAgent("Mozilla/5.0 (X11; Linux x86_64)"))
	assert.False(t, isSuspiciousUserAgent(""))
}
