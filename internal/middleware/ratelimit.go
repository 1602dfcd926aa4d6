package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the per-user limits.
type RateLimiterConfig struct {
	GeneralRate     rate.Limit // every authenticated request
	GeneralBurst    int
	BulkRate        rate.Limit // admin bulk deletions
	BulkBurst       int
	CleanupInterval time.Duration // how often idle entries are dropped
}

// RateLimiterConfigPerMinute builds a config from requests-per-minute limits.
// The burst equals the per-minute limit.
func RateLimiterConfigPerMinute(generalPerMinute, bulkPerMinute int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(generalPerMinute) / 60.0),
		GeneralBurst:    generalPerMinute,
		BulkRate:        rate.Limit(float64(bulkPerMinute) / 60.0),
		BulkBurst:       bulkPerMinute,
		CleanupInterval: 5 * time.Minute,
	}
}

// DefaultRateLimiterConfig is 120 req/min for the API and 5 req/min for bulk deletions.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfigPerMinute(120, 5)
}

// userLimiter is a user's limiter and when it was last used.
type userLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterSet is one bucket per user at a fixed rate.
type limiterSet struct {
	name  string
	rate  rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*userLimiter
}

func newLimiterSet(name string, r rate.Limit, burst int) *limiterSet {
	return &limiterSet{name: name, rate: r, burst: burst, limiters: make(map[string]*userLimiter)}
}

func (s *limiterSet) get(userID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	ul, ok := s.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.limiters[userID] = ul
	}
	ul.lastAccess = time.Now()
	return ul.limiter
}

func (s *limiterSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

func (s *limiterSet) evictIdle(now time.Time, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, ul := range s.limiters {
		if now.Sub(ul.lastAccess) > ttl {
			delete(s.limiters, userID)
		}
	}
}

// middleware limits requests per authenticated user. It must run after NewAuthMiddleware.
func (s *limiterSet) middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				WriteUnauthorized(w)
				return
			}

			if !s.get(userID).Allow() {
				writeRateLimitResponse(w, s.rate)
				slog.Warn("rate limit exceeded",
					slog.String("user_id", userID),
					slog.String("limit_type", s.name),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter manages per-user rate limits for general API use and bulk deletions.
type RateLimiter struct {
	config  RateLimiterConfig
	general *limiterSet
	bulk    *limiterSet

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRateLimiter creates a RateLimiter and starts evicting idle entries in the background.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:  config,
		general: newLimiterSet("general", config.GeneralRate, config.GeneralBurst),
		bulk:    newLimiterSet("bulk", config.BulkRate, config.BulkBurst),
		stopCh:  make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop ends the background cleanup. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// GeneralMiddleware applies the general API limit.
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return rl.general.middleware()
}

// BulkOperationMiddleware applies the bulk deletion limit, independent of the general one.
func (rl *RateLimiter) BulkOperationMiddleware() func(next http.Handler) http.Handler {
	return rl.bulk.middleware()
}

// GeneralLimiterCount is the number of tracked users for the general limit.
func (rl *RateLimiter) GeneralLimiterCount() int {
	return rl.general.len()
}

// BulkLimiterCount is the number of tracked users for the bulk limit.
func (rl *RateLimiter) BulkLimiterCount() int {
	return rl.bulk.len()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops entries idle for more than twice the cleanup interval.
func (rl *RateLimiter) cleanup() {
	ttl := rl.config.CleanupInterval * 2
	now := time.Now()
	rl.general.evictIdle(now, ttl)
	rl.bulk.evictIdle(now, ttl)
}

// writeRateLimitResponse writes 429 with Retry-After set to the time until one token refills.
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     "RATE_LIMIT_EXCEEDED",
		Message:  "Too many requests. Please try again later.",
		Category: "system",
		Action:   "Wait for the time given in Retry-After and retry.",
	})
}
