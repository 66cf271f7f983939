package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	limiterMaxClients = 1024
	limiterIdleTTL    = 3 * time.Minute
)

type limiterClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore holds a map of client keys to their rate limiters.
type limiterStore struct {
	clients map[string]*limiterClient
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	max     int
}

func newLimiterStore(perMinute int) *limiterStore {
	if perMinute <= 0 {
		perMinute = 5
	}
	return &limiterStore{
		clients: make(map[string]*limiterClient),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		max:     limiterMaxClients,
	}
}

// getLimiter returns the rate limiter for a client, creating one if it
// doesn't exist. Idle entries are evicted once the store fills up, which
// keeps the map bounded.
func (s *limiterStore) getLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if c, ok := s.clients[key]; ok {
		c.lastSeen = now
		return c.limiter
	}

	if len(s.clients) >= s.max {
		s.evictIdle(now)
	}

	c := &limiterClient{limiter: rate.NewLimiter(s.limit, s.burst), lastSeen: now}
	s.clients[key] = c
	return c.limiter
}

func (s *limiterStore) evictIdle(now time.Time) {
	for key, c := range s.clients {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(s.clients, key)
		}
	}
}

// RateLimit limits requests per client IP. Used on booking creation to blunt
// scripted slot-squatting; a small per-minute budget per client.
func RateLimit(perMinute int, logger *zap.Logger) func(http.Handler) http.Handler {
	store := newLimiterStore(perMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !store.getLimiter(ip).Allow() {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path))
				utils.ResponseTooManyRequests(w, "Too many requests. Try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys the limiter. X-Forwarded-For can carry a comma-separated
// chain where everything before the last hop is client-supplied; trusting
// it would let a caller rotate keys, so only the address appended by our
// own proxy counts.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
