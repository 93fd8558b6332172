package synthesis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RequestTimeout bounds one synthesis call.
const RequestTimeout = 60 * time.Second

// ErrEndpointNotConfigured is returned when no TTS URL is set.
var ErrEndpointNotConfigured = errors.New("synthesis endpoint is not configured")

// Category classifies a failed synthesis call for the UI.
type Category string

const (
	CategoryConnection Category = "connection"
	CategoryTimeout    Category = "timeout"
	CategoryStatus     Category = "status"
	CategoryInternal   Category = "internal"
)

// RequestError is a category-aware synthesis failure. Detail is the
// user-facing message rendered by the voice generation view.
type RequestError struct {
	Category Category `json:"category"`
	Detail   string   `json:"detail"`
	Err      error    `json:"-"`
}

// Error returns the user-facing failure message.
func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	return e.Detail
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// synthesisPayload is the JSON request body for the TTS endpoint.
type synthesisPayload struct {
	Text string `json:"text"`
}

// Client calls the remote text-to-speech endpoint and returns raw
// WAV-encoded audio bytes.
type Client struct {
	http *http.Client
}

// Option customizes a client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// NewClient constructs a synthesis client with the bounded timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: RequestTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Synthesize POSTs text as JSON to endpoint and returns the response
// body bytes on success. Failures are always *RequestError with
// exactly one category.
func (c *Client) Synthesize(ctx context.Context, endpoint string, text string) ([]byte, error) {
	target := strings.TrimSpace(endpoint)
	if target == "" {
		return nil, ErrEndpointNotConfigured
	}

	payload, err := json.Marshal(synthesisPayload{Text: text})
	if err != nil {
		return nil, internalError(err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, internalError(err)
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{
			Category: CategoryStatus,
			Detail: fmt.Sprintf(
				"HTTP Error %d: %s\nResponse body: %s",
				resp.StatusCode,
				http.StatusText(resp.StatusCode),
				strings.TrimSpace(string(body)),
			),
		}
	}

	return body, nil
}

// classifyTransportError maps transport failures to timeout or
// connection categories, anything else to internal.
func classifyTransportError(err error) *RequestError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
			return &RequestError{
				Category: CategoryTimeout,
				Detail:   fmt.Sprintf("Request timed out: %v", err),
				Err:      err,
			}
		}
		return &RequestError{
			Category: CategoryConnection,
			Detail:   fmt.Sprintf("Connection error: %v", err),
			Err:      err,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &RequestError{
			Category: CategoryTimeout,
			Detail:   fmt.Sprintf("Request timed out: %v", err),
			Err:      err,
		}
	}
	return internalError(err)
}

// internalError wraps uncategorized failures with type and message.
func internalError(err error) *RequestError {
	return &RequestError{
		Category: CategoryInternal,
		Detail:   fmt.Sprintf("Unexpected error: %T: %v", err, err),
		Err:      err,
	}
}
