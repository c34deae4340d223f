package utils

import (
	"context"
	"sync"
	"time"
)

// Pinger checks one external dependency.
type Pinger func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every dependency answered the last check.
func (s HealthStatus) Healthy() bool {
	return s.Mongo && s.Redis
}

// HealthMonitor keeps the latest health snapshot in memory.
type HealthMonitor struct {
	mongo Pinger
	redis Pinger

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(mongo, redis Pinger) *HealthMonitor {
	return &HealthMonitor{mongo: mongo, redis: redis}
}

// Status returns latest stored health snapshot, checking first if none exists yet.
func (m *HealthMonitor) Status(ctx context.Context) HealthStatus {
	m.mu.RLock()
	current := m.current
	m.mu.RUnlock()
	if current.CheckedAt.IsZero() {
		return m.Check(ctx)
	}
	return current
}

// Check pings every dependency and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{
		Mongo:     m.mongo != nil && m.mongo(ctx) == nil,
		Redis:     m.redis != nil && m.redis(ctx) == nil,
		CheckedAt: time.Now(),
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		m.Check(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
