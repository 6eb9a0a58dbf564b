package telemetry_test

import (
	"context"
	"sync"
	"time"
)

// stubRenderer is a simple test double for ports.Renderer.
type stubRenderer struct {
	mu            sync.Mutex
	planCalls     int
	startCalls    int
	logCalls      int
	completeCalls int
	logs          [][]byte
}

func (m *stubRenderer) Start(_ context.Context) error { return nil }
func (m *stubRenderer) Stop() error                   { return nil }
func (m *stubRenderer) Wait() error                   { return nil }

func (m *stubRenderer) OnPlanEmit(_ []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planCalls++
}

func (m *stubRenderer) OnStageStart(_, _, _ string, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCalls++
}

func (m *stubRenderer) OnStageLog(_ string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logCalls++
	m.logs = append(m.logs, data)
}

func (m *stubRenderer) OnStageComplete(_ string, _ time.Time, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completeCalls++
}
