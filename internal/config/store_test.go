package config

import (
	"os"
	"path/filepath"
	"testing"

	"cim-nlp-studio/internal/domain"
)

// TestJSONStoreLoadMissingReturnsDefaults checks first-run behavior.
func TestJSONStoreLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv(EnvASRURL, "")
	t.Setenv(EnvTTSURL, "")
	path := filepath.Join(t.TempDir(), "missing", "settings.json")
	store := NewJSONStore(path)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != (domain.Settings{}) {
		t.Fatalf("settings = %+v, want empty defaults", got)
	}
}

// TestJSONStoreSaveAndLoadRoundTrip checks persisted settings fidelity.
func TestJSONStoreSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv(EnvASRURL, "")
	t.Setenv(EnvTTSURL, "")
	path := filepath.Join(t.TempDir(), "cfg", "settings.json")
	store := NewJSONStore(path)
	want := domain.Settings{
		ASRURL: "https://asr.example.test/submit",
		TTSURL: "https://tts.example.test/synthesize",
	}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

// TestJSONStoreLoadInvalidJSON checks parse error handling.
func TestJSONStoreLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "settings.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not-json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewJSONStore(path)
	if _, err := store.Load(); err == nil {
		t.Fatal("expected json parse error")
	}
}

// TestApplyEnvOverridesStoredEndpoints checks env precedence over file values.
func TestApplyEnvOverridesStoredEndpoints(t *testing.T) {
	t.Setenv(EnvASRURL, "https://asr.override.test")
	t.Setenv(EnvTTSURL, "  ")

	got := ApplyEnv(domain.Settings{
		ASRURL: "https://asr.stored.test",
		TTSURL: "https://tts.stored.test",
	})
	if got.ASRURL != "https://asr.override.test" {
		t.Fatalf("asr url = %q, want env override", got.ASRURL)
	}
	if got.TTSURL != "https://tts.stored.test" {
		t.Fatalf("tts url = %q, want stored value kept for blank env", got.TTSURL)
	}
}
