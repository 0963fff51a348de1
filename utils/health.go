package utils

import (
	"context"
	"sync"
	"time"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Checks    map[string]bool `json:"checks"`
	Healthy   bool            `json:"healthy"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// HealthMonitor runs named checks periodically and keeps the latest snapshot.
type HealthMonitor struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
	status HealthStatus
}

func NewHealthMonitor(checks map[string]HealthCheck) *HealthMonitor {
	m := &HealthMonitor{checks: checks}
	m.status = HealthStatus{Checks: map[string]bool{}, Healthy: true}
	return m
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// CheckNow runs every check once and stores the result.
func (m *HealthMonitor) CheckNow(ctx context.Context) HealthStatus {
	results := make(map[string]bool, len(m.checks))
	healthy := true
	for name, check := range m.checks {
		cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		ok := check(cctx) == nil
		cancel()
		results[name] = ok
		healthy = healthy && ok
	}
	st := HealthStatus{Checks: results, Healthy: healthy, CheckedAt: time.Now()}

	m.mu.Lock()
	m.status = st
	m.mu.Unlock()
	return st
}

// Start performs periodic health checks until ctx is done.
func (m *HealthMonitor) Start(ctx context.Context, every time.Duration) {
	m.CheckNow(ctx)
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.CheckNow(ctx)
			}
		}
	}()
}
