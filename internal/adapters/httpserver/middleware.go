package httpserver

import (
	"context"
	"net"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Middleware func(http.Handler) http.Handler

// Chain wraps h so that the first middleware listed runs first.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type ctxKey int

const requestIDKey ctxKey = 0

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Interface("panic", rec).
					Str("request_id", requestIDFrom(r.Context())).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				fail(w, http.StatusInternalServerError, "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		ev := log.Info()
		if sw.status >= 500 {
			ev = log.Warn()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Dur("duration", time.Since(start)).
			Str("request_id", requestIDFrom(r.Context())).
			Str("ip", clientIP(r)).
			Msg("http")
	})
}

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if strings.HasPrefix(r.URL.Path, "/uploads/") {
			h.Set("Cache-Control", "public, max-age=604800")
		}
		next.ServeHTTP(w, r)
	})
}

// CORS answers preflight requests and tags responses for allowed origins.
// An origin list containing "*" allows any origin.
func CORS(origins []string) Middleware {
	wildcard := slices.Contains(origins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			h.Add("Vary", "Origin")
			if origin != "" && (wildcard || slices.Contains(origins, origin)) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				h.Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
				h.Set("Access-Control-Max-Age", "600")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimiter counts requests per key in fixed one-minute windows.
type RateLimiter struct {
	visitors sync.Map
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	mu    sync.Mutex
	start time.Time
	count int
}

func NewRateLimiter(window time.Duration) *RateLimiter {
	rl := &RateLimiter{window: window, now: time.Now}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(rl.window)
		cutoff := rl.now().Add(-rl.window)
		rl.visitors.Range(func(key, value any) bool {
			v := value.(*visitor)
			v.mu.Lock()
			stale := v.start.Before(cutoff)
			v.mu.Unlock()
			if stale {
				rl.visitors.Delete(key)
			}
			return true
		})
	}
}

// Allow records a hit for key and reports whether it is within limit.
func (rl *RateLimiter) Allow(key string, limit int) bool {
	val, _ := rl.visitors.LoadOrStore(key, &visitor{start: rl.now()})
	v := val.(*visitor)
	v.mu.Lock()
	defer v.mu.Unlock()
	now := rl.now()
	if now.Sub(v.start) >= rl.window {
		v.start, v.count = now, 0
	}
	v.count++
	return v.count <= limit
}

// PublicRateLimit limits POSTs to the given paths, per client IP, to the
// given number of requests per minute.
func PublicRateLimit(limits map[string]int) Middleware {
	rl := NewRateLimiter(time.Minute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit, ok := limits[r.URL.Path]
			if ok && r.Method == http.MethodPost && !rl.Allow(clientIP(r)+" "+r.URL.Path, limit) {
				log.Warn().Str("ip", clientIP(r)).Str("path", r.URL.Path).Msg("rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
				fail(w, http.StatusTooManyRequests, "too many requests, please try again later", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
