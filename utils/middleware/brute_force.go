package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/devlaunch/academy-api/utils/cache"
	"github.com/devlaunch/academy-api/utils/response"
)

// Progressive lockout schedule for failed logins from one IP. The attempt
// counter lives in a rolling window; crossing a threshold arms a lock whose
// duration grows with persistence.
const (
	attemptWindow = 15 * time.Minute

	lockTier1Attempts = 5
	lockTier2Attempts = 10
	lockTier3Attempts = 25

	lockTier1Duration = 2 * time.Minute
	lockTier2Duration = 1 * time.Hour
	lockTier3Duration = 24 * time.Hour
)

// BruteForceProtection guards the login route with Redis-backed counters.
// Redis being unreachable fails open: students must not be locked out of
// their course because the cache is down.
type BruteForceProtection struct {
	redisCache *cache.RedisCache
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(redisCache *cache.RedisCache) *BruteForceProtection {
	return &BruteForceProtection{redisCache: redisCache}
}

func attemptKey(ip string) string { return "login_guard:attempts:" + ip }
func lockKey(ip string) string    { return "login_guard:lock:" + ip }

// CheckAndRecordAttempt rejects requests from currently locked IPs with a
// Retry-After header; everything else passes through.
func (b *BruteForceProtection) CheckAndRecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()

		locked, err := b.redisCache.Exists(c.Context(), lockKey(ip))
		if err != nil {
			return c.Next()
		}

		if locked {
			ttl, _ := b.redisCache.TTL(c.Context(), lockKey(ip))
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = 60
			}

			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c, fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}

// RecordFailedAttempt bumps the counter for the IP and arms a lock when a
// tier threshold is crossed.
func (b *BruteForceProtection) RecordFailedAttempt(c *fiber.Ctx, ip, email string) error {
	ctx := c.Context()

	attempts, err := b.redisCache.Increment(ctx, attemptKey(ip))
	if err != nil {
		return nil
	}

	if attempts == 1 {
		b.redisCache.Expire(ctx, attemptKey(ip), attemptWindow)
	}

	var lockDuration time.Duration
	switch {
	case attempts >= lockTier3Attempts:
		lockDuration = lockTier3Duration
	case attempts >= lockTier2Attempts:
		lockDuration = lockTier2Duration
	case attempts >= lockTier1Attempts:
		lockDuration = lockTier1Duration
	default:
		return nil
	}

	return b.redisCache.Set(ctx, lockKey(ip), "locked", lockDuration)
}

// RecordSuccessfulAttempt clears the counter and any lock after a good login.
func (b *BruteForceProtection) RecordSuccessfulAttempt(c *fiber.Ctx, ip string) error {
	ctx := c.Context()

	b.redisCache.Delete(ctx, attemptKey(ip))
	b.redisCache.Delete(ctx, lockKey(ip))

	return nil
}
