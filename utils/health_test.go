package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthMonitorCheck(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name    string
		mongo   Pinger
		redis   Pinger
		healthy bool
	}{
		{"all up", up, up, true},
		{"mongo down", down, up, false},
		{"redis down", up, down, false},
		{"redis not configured", up, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewHealthMonitor(tt.mongo, tt.redis)
			status := m.Status(context.Background())
			assert.Equal(t, tt.healthy, status.Healthy())
			assert.False(t, status.CheckedAt.IsZero())
		})
	}
}

func TestHealthMonitorStatusReusesSnapshot(t *testing.T) {
	calls := 0
	counting := func(context.Context) error {
		calls++
		return nil
	}
	m := NewHealthMonitor(counting, counting)

	first := m.Status(context.Background())
	second := m.Status(context.Background())
	assert.Equal(t, first.CheckedAt, second.CheckedAt)
	assert.Equal(t, 2, calls)
}
