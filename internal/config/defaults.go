package config

import (
	"os"
	"strings"

	"cim-nlp-studio/internal/domain"
)

// Environment variables holding the remote inference endpoints.
const (
	EnvASRURL = "ASR_URL"
	EnvTTSURL = "TTS_URL"
)

// DefaultSettings returns baseline configuration for first launch.
// Endpoints default to empty; they must come from the environment or
// the settings view before the dependent feature can be used.
func DefaultSettings() domain.Settings {
	return domain.Settings{}
}

// ApplyEnv overlays endpoint URLs from the environment onto cfg.
func ApplyEnv(cfg domain.Settings) domain.Settings {
	if v := strings.TrimSpace(os.Getenv(EnvASRURL)); v != "" {
		cfg.ASRURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTTSURL)); v != "" {
		cfg.TTSURL = v
	}
	return cfg
}
