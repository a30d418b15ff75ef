package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"studiodesk/config"
	"studiodesk/shared"
	"studiodesk/shared/constant"
	"studiodesk/shared/failure"
	"studiodesk/transport/http/response"
)

const (
	cacheKeyRateLimit = "limiter"

	errTooManyLogins = "too many login attempts, try again later"
)

// RateLimit is a fixed window counter in redis keyed by client address and
// user agent. A redis failure lets the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, ClientIP(r), userAgent(r))

			count, err := a.cache.Incr(r.Context(), cacheKey, windowSecs)
			if err != nil {
				next.ServeHTTP(w, r)

				return
			}

			if count > int64(maxReqs) {
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(maxReqs)-count), 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

// LoginLimit throttles password attempts per client address with an
// in-process token bucket.
func (a *appMiddleware) LoginLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.LoginLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			if !a.login.allow(ClientIP(r), time.Now()) {
				response.WithError(w, failure.TooManyRequests(errTooManyLogins))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type loginEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type loginLimiter struct {
	mu         sync.Mutex
	entries    map[string]*loginEntry
	limit      rate.Limit
	burst      int
	evictAfter time.Duration
	lastEvict  time.Time
}

func newLoginLimiter(cfg *config.Config) *loginLimiter {
	perMinute := cfg.App.LoginLimiter.RequestsPerMin
	if perMinute <= 0 {
		perMinute = 5
	}

	burst := cfg.App.LoginLimiter.Burst
	if burst <= 0 {
		burst = 5
	}

	evictAfter := time.Duration(cfg.App.LoginLimiter.EvictAfterHours) * time.Hour
	if evictAfter <= 0 {
		evictAfter = time.Hour
	}

	return &loginLimiter{
		entries:    map[string]*loginEntry{},
		limit:      rate.Limit(perMinute / 60),
		burst:      burst,
		evictAfter: evictAfter,
	}
}

func (l *loginLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastEvict) > l.evictAfter {
		for k, entry := range l.entries {
			if now.Sub(entry.lastSeen) > l.evictAfter {
				delete(l.entries, k)
			}
		}

		l.lastEvict = now
	}

	entry, ok := l.entries[key]
	if !ok {
		entry = &loginEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = entry
	}

	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func userAgent(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}
