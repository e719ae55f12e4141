package middleware

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRateLimiter_Eviction: адреса с истёкшим окном удаляются из карты
func TestRateLimiter_Eviction(t *testing.T) {
	l := newRateLimiter(2, time.Minute)
	start := time.Now()

	for i := 0; i < 100; i++ {
		_, _, ok := l.allow(fmt.Sprintf("10.0.0.%d", i), start)
		require.True(t, ok)
	}
	assert.Len(t, l.clients, 100)

	// до конца окна ничего не удаляется
	_, _, ok := l.allow("10.0.1.1", start.Add(30*time.Second))
	require.True(t, ok)
	assert.Len(t, l.clients, 101)

	// после окна остаётся только адрес текущего запроса
	_, _, ok = l.allow("10.0.1.2", start.Add(2*time.Minute))
	require.True(t, ok)
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "10.0.1.2")
}

func TestRateLimiter_Window(t *testing.T) {
	l := newRateLimiter(2, time.Minute)
	now := time.Now()

	remaining, _, ok := l.allow("127.0.0.1", now)
	require.True(t, ok)
	assert.Equal(t, 1, remaining)

	_, _, ok = l.allow("127.0.0.1", now)
	require.True(t, ok)

	_, resetAt, ok := l.allow("127.0.0.1", now)
	assert.False(t, ok)
	assert.Equal(t, now.Add(time.Minute), resetAt)

	// новое окно
	remaining, _, ok = l.allow("127.0.0.1", resetAt.Add(time.Second))
	require.True(t, ok)
	assert.Equal(t, 1, remaining)
}
