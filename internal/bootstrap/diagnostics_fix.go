package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"cim-nlp-studio/internal/config"
	"cim-nlp-studio/internal/diagnostics"
	"cim-nlp-studio/internal/domain"
)

// FixDiagnostic repairs one failed endpoint check by copying the URL
// from the environment into the settings store.
func (a *App) FixDiagnostic(itemID string) (domain.DiagnosticReport, error) {
	if a.Store == nil {
		return domain.DiagnosticReport{}, fmt.Errorf("settings store is not configured")
	}

	id := strings.TrimSpace(itemID)
	if id == "" {
		return domain.DiagnosticReport{}, fmt.Errorf("diagnostic item id is required")
	}

	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	var envVar string
	switch id {
	case diagnostics.ItemASREndpoint:
		envVar = config.EnvASRURL
	case diagnostics.ItemTTSEndpoint:
		envVar = config.EnvTTSURL
	default:
		return domain.DiagnosticReport{}, fmt.Errorf("unsupported diagnostic item id: %s", id)
	}

	value := strings.TrimSpace(os.Getenv(envVar))
	if value == "" {
		report := a.refreshDiagnosticsFromSettings(settings)
		return report, fmt.Errorf("%s is not set in the environment", envVar)
	}

	switch id {
	case diagnostics.ItemASREndpoint:
		settings.ASRURL = value
	case diagnostics.ItemTTSEndpoint:
		settings.TTSURL = value
	}

	if err := a.Store.Save(settings); err != nil {
		report := a.refreshDiagnosticsFromSettings(settings)
		return report, fmt.Errorf("save settings after fix: %w", err)
	}

	return a.refreshDiagnosticsFromSettings(settings), nil
}
