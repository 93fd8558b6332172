package jobs

import (
	"errors"
	"sync"

	"cim-nlp-studio/internal/domain"
)

// ErrJobAlreadyRunning is returned when a generation is triggered while
// another one is in flight.
var ErrJobAlreadyRunning = errors.New("generation already running")

// ErrNoRunningJob is returned when an outcome is reported in idle state.
var ErrNoRunningJob = errors.New("no running generation")

// Manager tracks the single voice generation job and its idle/running
// cycle. Exactly one outbound call is allowed per running interval.
type Manager struct {
	mu      sync.RWMutex
	current domain.GenerationJob
}

// NewManager creates a manager in idle state with no outcome.
func NewManager() *Manager {
	return &Manager{
		current: domain.GenerationJob{
			Status: domain.JobStatusIdle,
		},
	}
}

// Begin moves the job from idle to running and clears both outcome
// slots. A begin while running is rejected.
func (m *Manager) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Status == domain.JobStatusRunning {
		return ErrJobAlreadyRunning
	}

	m.current = domain.GenerationJob{Status: domain.JobStatusRunning}
	return nil
}

// Complete records synthesized audio and returns the job to idle.
func (m *Manager) Complete(audio []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Status != domain.JobStatusRunning {
		return ErrNoRunningJob
	}

	m.current = domain.GenerationJob{
		Status:      domain.JobStatusIdle,
		ResultAudio: audio,
	}
	return nil
}

// Fail records an error message and returns the job to idle.
func (m *Manager) Fail(detail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Status != domain.JobStatusRunning {
		return ErrNoRunningJob
	}

	m.current = domain.GenerationJob{
		Status:      domain.JobStatusIdle,
		ErrorDetail: detail,
	}
	return nil
}

// Current returns a snapshot of the current job.
func (m *Manager) Current() domain.GenerationJob {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsRunning reports whether a generation call is in flight.
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Status == domain.JobStatusRunning
}
