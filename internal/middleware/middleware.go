package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"taskKeeper/internal/logger"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const RequestIDHeader = "X-Request-ID"

// RequestID кладёт id запроса в контекст, откуда его берут логи хендлеров и сервиса
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), requestID)))
	})
}

func GetRequestID(ctx context.Context) string {
	return logger.RequestID(ctx)
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.wroteHeader {
		return
	}
	sw.status = code
	sw.wroteHeader = true
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.WriteHeader(http.StatusOK)
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.size += n
	return n, err
}

func levelForStatus(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logging пишет одну строку на запрос: статус, размер ответа и длительность
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		logger.Log(
			levelForStatus(sw.status),
			"HTTP_OUT: Завершение запроса",
			logger.RequestIDField(r.Context()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Int("bytes_written", sw.size),
			zap.Duration("ms", time.Since(start)),
		)
	})
}

type clientInfo struct {
	count   int
	resetAt time.Time
}

// rateLimiter считает запросы с адреса в фиксированном окне.
// Раз в окно из карты удаляются адреса с истёкшим окном
type rateLimiter struct {
	mtx       sync.Mutex
	rpm       int
	window    time.Duration
	clients   map[string]*clientInfo
	nextSweep time.Time
}

func newRateLimiter(rpm int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		rpm:     rpm,
		window:  window,
		clients: make(map[string]*clientInfo),
	}
}

// allow возвращает остаток запросов и время сброса окна; ok=false - лимит исчерпан
func (l *rateLimiter) allow(ip string, now time.Time) (remaining int, resetAt time.Time, ok bool) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if now.After(l.nextSweep) {
		l.sweepLocked(now)
		l.nextSweep = now.Add(l.window)
	}

	info, exists := l.clients[ip]
	if !exists || now.After(info.resetAt) {
		info = &clientInfo{resetAt: now.Add(l.window)}
		l.clients[ip] = info
	}
	if info.count >= l.rpm {
		return 0, info.resetAt, false
	}
	info.count++
	return l.rpm - info.count, info.resetAt, true
}

func (l *rateLimiter) sweepLocked(now time.Time) {
	for ip, info := range l.clients {
		if now.After(info.resetAt) {
			delete(l.clients, ip)
		}
	}
}

// RateLimit ограничивает число запросов с одного адреса в минуту
func RateLimit(rpm int) func(http.Handler) http.Handler {
	limiter := newRateLimiter(rpm, time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			remaining, resetAt, ok := limiter.allow(getIp(r), now)

			if !ok {
				logger.Warn("HTTP: Превышен лимит запросов",
					logger.RequestIDField(r.Context()),
					zap.String("client_ip", r.RemoteAddr))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]any{
					"error":       "rate_limit_exceeded",
					"message":     "Слишком много запросов. Попробуйте позже.",
					"retry_after": int(resetAt.Sub(now).Seconds()),
					"request_id":  GetRequestID(r.Context()),
				})
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rpm))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}

// LocalOnly пропускает только запросы с loopback-адресов
func LocalOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := net.ParseIP(getIp(r))
		if ip == nil || !ip.IsLoopback() {
			logger.Warn("HTTP: Запрос не с локального адреса",
				logger.RequestIDField(r.Context()),
				zap.String("client_ip", r.RemoteAddr))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"error":      "forbidden",
				"message":    "Доступ разрешён только с локального адреса",
				"request_id": GetRequestID(r.Context()),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
