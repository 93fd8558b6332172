package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"cim-nlp-studio/internal/domain"
)

const (
	fileFieldName    = "file"
	emailFieldName   = "email"
	audioContentType = "audio/wav"

	// Downstream transcription is slow; the dispatch call waits up to
	// an hour before the client gives up.
	DispatchTimeout = time.Hour
)

// ErrMissingEmail is returned for submissions without an email address.
var ErrMissingEmail = errors.New("email address is required")

// ErrMissingAudio is returned for submissions without an audio payload.
var ErrMissingAudio = errors.New("audio payload is required")

// ErrEndpointNotConfigured is returned when no ASR URL is set.
var ErrEndpointNotConfigured = errors.New("transcription endpoint is not configured")

// Validate checks a submission attempt. Email presence is checked
// before audio presence.
func Validate(email string, audioLen int) error {
	if strings.TrimSpace(email) == "" {
		return ErrMissingEmail
	}
	if audioLen == 0 {
		return ErrMissingAudio
	}
	return nil
}

// Dispatcher sends audio submissions to the remote transcription
// endpoint. Results are delivered to the user by email out-of-band;
// the response body is never consumed here.
type Dispatcher struct {
	http *http.Client
}

// Option customizes a dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient overrides the HTTP client used for dispatch.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) {
		if client != nil {
			d.http = client
		}
	}
}

// NewDispatcher constructs a dispatcher with the long dispatch timeout.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		http: &http.Client{Timeout: DispatchTimeout},
	}

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch POSTs one multipart submission to endpoint: a WAV file part
// plus the recipient email form field. The caller decides what to do
// with the returned error; this app discards it by design.
func (d *Dispatcher) Dispatch(ctx context.Context, endpoint string, req domain.SubmissionRequest) error {
	target := strings.TrimSpace(endpoint)
	if target == "" {
		return ErrEndpointNotConfigured
	}
	if err := Validate(req.Email, len(req.Audio)); err != nil {
		return err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField(emailFieldName, req.Email); err != nil {
		return fmt.Errorf("dispatcher: write email field: %w", err)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileFieldName, req.FileName))
	header.Set("Content-Type", audioContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("dispatcher: create file part: %w", err)
	}
	if _, err := part.Write(req.Audio); err != nil {
		return fmt.Errorf("dispatcher: write audio payload: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("dispatcher: close multipart writer: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return fmt.Errorf("dispatcher: build request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.http.Do(request)
	if err != nil {
		return fmt.Errorf("dispatcher: http request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("dispatcher: unexpected status %d", resp.StatusCode)
	}
	return nil
}
