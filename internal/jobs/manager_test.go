package jobs

import (
	"testing"

	"cim-nlp-studio/internal/domain"
)

// TestManagerLifecycle verifies the idle -> running -> idle cycle with
// a successful outcome.
func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	if m.IsRunning() {
		t.Fatal("new manager should be idle")
	}
	if job := m.Current(); job.ResultAudio != nil || job.ErrorDetail != "" {
		t.Fatalf("fresh job has outcome: %+v", job)
	}

	if err := m.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if !m.IsRunning() {
		t.Fatal("expected running after begin")
	}

	if err := m.Complete([]byte("RIFF")); err != nil {
		t.Fatalf("complete: %v", err)
	}

	job := m.Current()
	if job.Status != domain.JobStatusIdle {
		t.Fatalf("status = %s, want idle", job.Status)
	}
	if string(job.ResultAudio) != "RIFF" {
		t.Fatalf("result audio = %q, want RIFF", job.ResultAudio)
	}
	if job.ErrorDetail != "" {
		t.Fatalf("error detail = %q, want empty", job.ErrorDetail)
	}
}

// TestManagerRejectsConcurrentBegin checks the busy flag.
func TestManagerRejectsConcurrentBegin(t *testing.T) {
	m := NewManager()
	if err := m.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := m.Begin(); err != ErrJobAlreadyRunning {
		t.Fatalf("second begin error = %v, want %v", err, ErrJobAlreadyRunning)
	}
}

// TestManagerBeginClearsPreviousOutcome verifies both outcome slots are
// cleared at the moment a new run starts.
func TestManagerBeginClearsPreviousOutcome(t *testing.T) {
	m := NewManager()
	if err := m.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := m.Fail("HTTP Error 500"); err != nil {
		t.Fatalf("fail: %v", err)
	}

	if err := m.Begin(); err != nil {
		t.Fatalf("begin after failure: %v", err)
	}
	job := m.Current()
	if job.ResultAudio != nil || job.ErrorDetail != "" {
		t.Fatalf("outcome not cleared on begin: %+v", job)
	}
}

// TestManagerOutcomeExclusivity verifies audio and error are never both
// set across alternating outcomes.
func TestManagerOutcomeExclusivity(t *testing.T) {
	m := NewManager()

	if err := m.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := m.Complete([]byte{1, 2, 3}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := m.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := m.Fail("Connection error: refused"); err != nil {
		t.Fatalf("fail: %v", err)
	}

	job := m.Current()
	if job.ResultAudio != nil {
		t.Fatalf("result audio = %v, want nil after failure", job.ResultAudio)
	}
	if job.ErrorDetail == "" {
		t.Fatal("expected error detail after failure")
	}
}

// TestManagerOutcomeRequiresRunningJob rejects outcomes in idle state.
func TestManagerOutcomeRequiresRunningJob(t *testing.T) {
	m := NewManager()
	if err := m.Complete(nil); err != ErrNoRunningJob {
		t.Fatalf("complete error = %v, want %v", err, ErrNoRunningJob)
	}
	if err := m.Fail("boom"); err != ErrNoRunningJob {
		t.Fatalf("fail error = %v, want %v", err, ErrNoRunningJob)
	}
}
