package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory — in-memory ограничитель с фиксированным окном на ключ.
type Memory struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	now      func() time.Time

	stop chan struct{}
	once sync.Once
}

type visitor struct {
	windowStart time.Time
	count       int
}

// NewMemory создаёт ограничитель и запускает фоновую очистку устаревших ключей
// (останавливается Close).
func NewMemory(limit int, window time.Duration) *Memory {
	m := &Memory{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	v, ok := m.visitors[key]
	if !ok || now.Sub(v.windowStart) >= m.window {
		m.visitors[key] = &visitor{windowStart: now, count: 1}
		return 1 <= m.limit, nil
	}

	v.count++

	return v.count <= m.limit, nil
}

func (m *Memory) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

func (m *Memory) cleanupLoop() {
	t := time.NewTicker(m.window)
	defer t.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-t.C:
			m.cleanup()
		}
	}
}

func (m *Memory) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, v := range m.visitors {
		if now.Sub(v.windowStart) >= m.window {
			delete(m.visitors, k)
		}
	}
}

var _ Limiter = (*Memory)(nil)
