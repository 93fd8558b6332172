package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"go.uber.org/zap"

	"cim-nlp-studio/internal/compose"
	"cim-nlp-studio/internal/config"
	"cim-nlp-studio/internal/diagnostics"
	"cim-nlp-studio/internal/domain"
	"cim-nlp-studio/internal/jobs"
	"cim-nlp-studio/internal/logging"
	"cim-nlp-studio/internal/synthesis"
	"cim-nlp-studio/internal/transcribe"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Acknowledgment messages shown as soon as a submission is accepted for
// dispatch. They are not gated on the background call completing.
const (
	uploadAckMessage = "Your file has been submitted! You will receive an email " +
		"when processing begins, and another when your transcription is ready."
	recordingAckMessage = "Your recording has been submitted! You will receive an " +
		"email when processing begins, and another when your transcription is ready."
)

// audioDispatcher isolates the transcription dispatch behind an interface.
type audioDispatcher interface {
	Dispatch(ctx context.Context, endpoint string, req domain.SubmissionRequest) error
}

// voiceSynthesizer isolates the TTS call behind an interface.
type voiceSynthesizer interface {
	Synthesize(ctx context.Context, endpoint string, text string) ([]byte, error)
}

// App wires configuration, the generation job, remote clients, and UI
// runtime callbacks.
type App struct {
	Settings    domain.Settings
	Store       config.Store
	Jobs        *jobs.Manager
	Diagnostics domain.DiagnosticReport

	assets  fs.FS
	checker *diagnostics.Checker
	logger  *zap.Logger

	dispatcher audioDispatcher
	synth      voiceSynthesizer
	buffer     *compose.Buffer
	events     *jobs.EventBus

	mu         sync.Mutex
	activeView domain.ViewID
	runtimeCtx context.Context
}

// New builds the application with persisted settings and startup checks.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures
// embedded frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	_ = godotenv.Load()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user home: %w", err)
	}

	store := config.NewJSONStore(filepath.Join(homeDir, ".cim-nlp-studio", "settings.json"))
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	logger, err := logging.New(logging.Options{Verbose: os.Getenv("CIM_DEBUG") != ""})
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	checker := diagnostics.NewChecker()
	report := checker.Run(settings)

	return &App{
		Settings:    settings,
		Store:       store,
		Jobs:        jobs.NewManager(),
		Diagnostics: report,
		assets:      assets,
		checker:     checker,
		logger:      logger,
		dispatcher:  transcribe.NewDispatcher(),
		synth:       synthesis.NewClient(),
		buffer:      compose.NewBuffer(),
		events:      jobs.NewEventBus(1000),
		activeView:  domain.Views()[0].ID,
	}, nil
}

// Run starts the Wails application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "Cook Islands Māori NLP",
		Width:       1180,
		Height:      780,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
		},
		Bind: []interface{}{a},
	})
}

// Startup stores the Wails runtime context for push events and dialogs.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// Views returns the fixed navigation catalog.
func (a *App) Views() []domain.View {
	return domain.Views()
}

// ActiveView returns the currently selected view.
func (a *App) ActiveView() domain.ViewID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activeView
}

// SelectView activates one view. Re-selecting the active view is a
// no-op; unknown ids are rejected.
func (a *App) SelectView(id string) (domain.ViewID, error) {
	target := domain.ViewID(strings.TrimSpace(id))
	known := false
	for _, view := range domain.Views() {
		if view.ID == target {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("unknown view: %s", id)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.activeView = target
	return a.activeView, nil
}

// GetSettings loads and returns the latest settings.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings normalizes and persists settings, then refreshes the
// endpoint diagnostics.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	normalized := normalizeSettings(settings)
	if err := a.Store.Save(normalized); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.refreshDiagnosticsFromSettings(normalized)
	return normalized, nil
}

// GetDiagnostics returns the latest cached endpoint report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Diagnostics
}

// RefreshDiagnostics reloads settings and reruns endpoint checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}

	return a.refreshDiagnosticsFromSettings(settings), nil
}

// refreshDiagnosticsFromSettings recomputes the cached report.
func (a *App) refreshDiagnosticsFromSettings(settings domain.Settings) domain.DiagnosticReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Settings = settings
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(settings)
	}
	return a.Diagnostics
}

// SubmitUpload validates and dispatches an uploaded audio file under
// its original filename.
func (a *App) SubmitUpload(email string, fileName string, audio []byte) (domain.SubmissionReceipt, error) {
	return a.submitAudio(domain.SubmissionRequest{
		Email:    strings.TrimSpace(email),
		FileName: strings.TrimSpace(fileName),
		Audio:    audio,
	}, uploadAckMessage)
}

// SubmitRecording validates and dispatches a microphone capture under
// the fixed recording filename.
func (a *App) SubmitRecording(email string, audio []byte) (domain.SubmissionReceipt, error) {
	return a.submitAudio(domain.SubmissionRequest{
		Email:    strings.TrimSpace(email),
		FileName: domain.RecordingFileName,
		Audio:    audio,
	}, recordingAckMessage)
}

// submitAudio acknowledges a valid submission immediately and hands the
// dispatch to a detached goroutine. Delivery is best effort: the
// dispatch outcome is never surfaced to the user.
func (a *App) submitAudio(req domain.SubmissionRequest, ack string) (domain.SubmissionReceipt, error) {
	if err := transcribe.Validate(req.Email, len(req.Audio)); err != nil {
		return domain.SubmissionReceipt{}, err
	}

	settings, err := a.Store.Load()
	if err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("load settings: %w", err)
	}
	if strings.TrimSpace(settings.ASRURL) == "" {
		return domain.SubmissionReceipt{}, transcribe.ErrEndpointNotConfigured
	}

	receipt := domain.SubmissionReceipt{
		ID:       uuid.NewString(),
		FileName: req.FileName,
		Message:  ack,
	}
	a.publishEvent(jobs.Event{
		Type:         jobs.EventTypeAck,
		Message:      ack,
		SubmissionID: receipt.ID,
		FileName:     receipt.FileName,
	})

	go a.dispatchSubmission(settings.ASRURL, req, receipt.ID)
	return receipt, nil
}

// dispatchSubmission performs the background dispatch and discards its
// outcome, logging it for operators only.
func (a *App) dispatchSubmission(endpoint string, req domain.SubmissionRequest, submissionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), transcribe.DispatchTimeout)
	defer cancel()

	if err := a.dispatcher.Dispatch(ctx, endpoint, req); err != nil {
		a.logger.Debug("transcription dispatch failed",
			zap.String("submissionId", submissionID),
			zap.String("fileName", req.FileName),
			zap.Error(err))
		return
	}

	a.logger.Debug("transcription dispatch completed",
		zap.String("submissionId", submissionID),
		zap.String("fileName", req.FileName))
}

// Glyphs returns the special character catalog for the compose view.
func (a *App) Glyphs() []string {
	return domain.Glyphs()
}

// InputText returns the current compose buffer value.
func (a *App) InputText() string {
	return a.buffer.Value()
}

// SetInputText replaces the compose buffer with keyboard state.
func (a *App) SetInputText(text string) {
	a.buffer.Set(text)
}

// AppendGlyph appends one catalog glyph to the compose buffer and
// returns the updated text.
func (a *App) AppendGlyph(glyph string) (string, error) {
	for _, g := range domain.Glyphs() {
		if g == glyph {
			return a.buffer.Append(glyph), nil
		}
	}
	return "", fmt.Errorf("unknown glyph: %q", glyph)
}

// GenerateVoice starts one generation cycle and runs the blocking call
// asynchronously. The returned snapshot is already in running state so
// the UI disables the trigger before the call completes.
func (a *App) GenerateVoice() (domain.GenerationJob, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.GenerationJob{}, fmt.Errorf("load settings: %w", err)
	}
	if strings.TrimSpace(settings.TTSURL) == "" {
		return domain.GenerationJob{}, synthesis.ErrEndpointNotConfigured
	}

	if err := a.Jobs.Begin(); err != nil {
		return domain.GenerationJob{}, err
	}

	a.publishEvent(jobs.Event{
		Type:    jobs.EventTypeStatus,
		Status:  domain.JobStatusRunning,
		Message: "Please wait...",
	})

	go a.runGeneration(settings.TTSURL, a.buffer.Value())
	return a.Jobs.Current(), nil
}

// runGeneration performs the single outbound synthesis call and records
// exactly one outcome.
func (a *App) runGeneration(endpoint string, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), synthesis.RequestTimeout)
	defer cancel()

	audio, err := a.synth.Synthesize(ctx, endpoint, text)
	if err != nil {
		detail := err.Error()
		_ = a.Jobs.Fail(detail)
		a.publishEvent(jobs.Event{
			Type:    jobs.EventTypeError,
			Status:  domain.JobStatusIdle,
			Message: detail,
		})
		a.logger.Info("voice generation failed", zap.Error(err))
		return
	}

	_ = a.Jobs.Complete(audio)
	a.publishEvent(jobs.Event{
		Type:    jobs.EventTypeResult,
		Status:  domain.JobStatusIdle,
		Message: "Audio generated!",
	})
	a.logger.Info("voice generation completed", zap.Int("audioBytes", len(audio)))
}

// CurrentJob returns the current generation job snapshot.
func (a *App) CurrentJob() domain.GenerationJob {
	return a.Jobs.Current()
}

// JobEvents returns all events with sequence greater than sinceSeq.
func (a *App) JobEvents(sinceSeq int64) []jobs.Event {
	return a.events.Since(sinceSeq)
}

// SaveGeneratedAudio opens a save dialog for the last generated audio
// and writes it as a WAV file. Returns the chosen path.
func (a *App) SaveGeneratedAudio() (string, error) {
	job := a.Jobs.Current()
	if len(job.ResultAudio) == 0 {
		return "", fmt.Errorf("no generated audio to save")
	}

	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	path, err := wailsruntime.SaveFileDialog(ctx, wailsruntime.SaveDialogOptions{
		Title:           "Save generated audio",
		DefaultFilename: domain.GeneratedAudioFileName,
		Filters: []wailsruntime.FileFilter{
			{DisplayName: "WAV audio", Pattern: "*.wav"},
		},
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(path) == "" {
		return "", nil
	}

	if err := os.WriteFile(path, job.ResultAudio, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return path, nil
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event jobs.Event) {
	published := a.events.Publish(event)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, "job:event", published)
	}
}

// runtimeContext returns the Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

// normalizeSettings trims endpoint URLs.
func normalizeSettings(settings domain.Settings) domain.Settings {
	settings.ASRURL = strings.TrimSpace(settings.ASRURL)
	settings.TTSURL = strings.TrimSpace(settings.TTSURL)
	return settings
}
