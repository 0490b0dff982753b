package session

import (
	"sync"
	"time"
)

// TimeProvider supplies monotonic host time to the driver
type TimeProvider interface {
	Now() time.Duration
}

// MonotonicTime reads the wall clock's monotonic reading since creation
type MonotonicTime struct {
	epoch time.Time
}

func NewMonotonicTime() *MonotonicTime {
	return &MonotonicTime{epoch: time.Now()}
}

func (m *MonotonicTime) Now() time.Duration {
	return time.Since(m.epoch)
}

// ManualTime is a controllable time source for tests and replays
type ManualTime struct {
	mu  sync.RWMutex
	now time.Duration
}

func (m *ManualTime) Now() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *ManualTime) Set(now time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *ManualTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}
