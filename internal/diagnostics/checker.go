package diagnostics

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"cim-nlp-studio/internal/domain"
)

// Diagnostic item IDs for the two remote endpoints.
const (
	ItemASREndpoint = "endpoint_asr"
	ItemTTSEndpoint = "endpoint_tts"
)

// Checker validates the configured remote inference endpoints.
type Checker struct {
	now func() time.Time
}

// NewChecker builds a checker using the real clock.
func NewChecker() *Checker {
	return &Checker{now: time.Now}
}

// Run executes all endpoint checks and returns a combined report.
func (c *Checker) Run(settings domain.Settings) domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		c.checkEndpoint(ItemASREndpoint, "Transcription endpoint", "ASR_URL", settings.ASRURL),
		c.checkEndpoint(ItemTTSEndpoint, "Voice generation endpoint", "TTS_URL", settings.TTSURL),
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			hasFailures = true
			break
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: c.now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// checkEndpoint validates one endpoint URL for presence and shape.
func (c *Checker) checkEndpoint(id, name, envVar, raw string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   id,
		Name: name,
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("%s is not configured.", name)
		item.Hint = fmt.Sprintf("Set %s in the environment or in the settings view.", envVar)
		return item
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("%s is not a valid absolute http(s) URL: %s", name, trimmed)
		item.Hint = fmt.Sprintf("Use a full URL such as https://host/path for %s.", envVar)
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Configured: %s", parsed.Host)
	return item
}

// NewCheckerForTests creates a checker with an injectable clock.
func NewCheckerForTests(now func() time.Time) *Checker {
	return &Checker{now: now}
}
