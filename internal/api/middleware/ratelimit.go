package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, повторите позже"

// limiterStore хранит лимитер на каждый IP
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	lastGC   time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(requestsPerMinute, burst int) *limiterStore {
	return &limiterStore{
		limiters: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
}

func (s *limiterStore) get(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Периодически выбрасываем давно неактивные адреса
	if now.Sub(s.lastGC) > s.idleTTL {
		for key, v := range s.limiters {
			if now.Sub(v.lastSeen) > s.idleTTL {
				delete(s.limiters, key)
			}
		}
		s.lastGC = now
	}

	v, ok := s.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimit ограничивает число запросов с одного IP
func RateLimit(requestsPerMinute, burst int, logger Logger) func(http.Handler) http.Handler {
	store := newLimiterStore(requestsPerMinute, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !store.get(ip, time.Now()).Allow() {
				logger.Warn("Rate limit exceeded: ip=%s, path=%s", ip, r.URL.Path)
				w.Header().Set("Retry-After", "60")
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
