package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemory_LimitWithinWindow(t *testing.T) {
	t.Parallel()

	m := NewMemory(3, time.Minute)
	t.Cleanup(func() { _ = m.Close() })

	now := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := m.Allow(ctx, "1.1.1.1")
		require.NoError(t, err)
		require.True(t, ok, "attempt %d", i+1)
	}

	ok, _ := m.Allow(ctx, "1.1.1.1")
	require.False(t, ok)

	// Другой ключ считается отдельно.
	ok, _ = m.Allow(ctx, "2.2.2.2")
	require.True(t, ok)

	// Новое окно.
	now = now.Add(time.Minute)
	ok, _ = m.Allow(ctx, "1.1.1.1")
	require.True(t, ok)
}

func TestMemory_Cleanup(t *testing.T) {
	t.Parallel()

	m := NewMemory(1, time.Minute)
	t.Cleanup(func() { _ = m.Close() })

	now := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time { return now }

	_, _ = m.Allow(context.Background(), "k")
	now = now.Add(2 * time.Minute)
	m.cleanup()

	m.mu.Lock()
	defer m.mu.Unlock()
	require.Empty(t, m.visitors)
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()

	m := NewMemory(50, time.Hour)
	t.Cleanup(func() { _ = m.Close() })

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := m.Allow(context.Background(), "ip")
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 50, allowed)
}

func TestMemory_CloseIdempotent(t *testing.T) {
	t.Parallel()

	m := NewMemory(1, time.Second)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}
