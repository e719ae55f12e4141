package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/middleware"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(middleware.GetRequestID(r.Context())))
	})
}

// TestRequestID тестирует генерацию и проброс request id
func TestRequestID(t *testing.T) {
	h := middleware.RequestID(okHandler())

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get("X-Request-ID")
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "abc", w.Body.String())
	})

	t.Run("visible to service logs", func(t *testing.T) {
		var seen string
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "svc-1")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "svc-1", seen)
	})
}

// TestLogging тестирует, что статус ответа не теряется
func TestLogging(t *testing.T) {
	h := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

// TestRateLimit тестирует ограничение частоты запросов
func TestRateLimit(t *testing.T) {
	h := middleware.RateLimit(2)(okHandler())

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	first := send("127.0.0.1:1000")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, send("127.0.0.1:1001").Code)

	limited := send("127.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Body.String(), "rate_limit_exceeded")

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000").Code, "другой адрес считается отдельно")
}

// TestLocalOnly тестирует отказ нелокальным клиентам
func TestLocalOnly(t *testing.T) {
	h := middleware.LocalOnly(okHandler())

	tests := []struct {
		name           string
		remoteAddr     string
		expectedStatus int
	}{
		{name: "ipv4 loopback", remoteAddr: "127.0.0.1:5000", expectedStatus: http.StatusOK},
		{name: "ipv6 loopback", remoteAddr: "[::1]:5000", expectedStatus: http.StatusOK},
		{name: "lan address", remoteAddr: "192.168.1.10:5000", expectedStatus: http.StatusForbidden},
		{name: "garbage", remoteAddr: "nowhere", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
