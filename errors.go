package docsdk

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyID           = errors.New("id cannot be empty")
	ErrEmptyDownloadURL  = errors.New("download url cannot be empty")
	ErrEmptyTasks        = errors.New("job needs at least one task")
	ErrEmptySignature    = errors.New("signature cannot be empty")
	ErrSignatureMismatch = errors.New("webhook signature mismatch")
	ErrMissingAPIKey     = errors.New("api key is required")
	ErrMissingSecret     = errors.New("webhook signing secret is not configured")
	ErrMissingUploadForm = errors.New("upload task did not return an upload form")
	ErrNilReader         = errors.New("reader cannot be nil")
	ErrNilWriter         = errors.New("writer cannot be nil")
	ErrNilRequest        = errors.New("request cannot be nil")
	ErrDeserialization   = errors.New("response body does not match the expected type")
	ErrTypeMismatch      = errors.New("expected type does not fit the result body")
	ErrClientClosed      = errors.New("async client is closed")
)

// DeserializationError reports a 2xx response whose body could not be decoded
// into the expected type. Status and headers are kept for diagnostics.
type DeserializationError struct {
	Status  int
	Headers Headers
	Type    ResponseType
	Err     error
}

func (e *DeserializationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decode %s response (status %d): empty body", e.Type, e.Status)
	}
	return fmt.Sprintf("decode %s response (status %d): %v", e.Type, e.Status, e.Err)
}

func (e *DeserializationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDeserialization}
	}
	return []error{ErrDeserialization, e.Err}
}

// APIError describes a non-2xx result. It is never returned by extraction
// itself; Result.Err builds it on demand.
type APIError struct {
	Status  int
	Code    string
	Message string
	// Fields holds per-field validation messages when the API sends them.
	Fields map[string]any
	Body   map[string]any
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("api returned status %d (%s): %s", e.Status, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("api returned status %d", e.Status)
	}
}

// Temporary reports whether retrying the call later may succeed.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// errStatus formats a failure for an operation that ended on a non-2xx status.
func errStatus(operation string, err error) error {
	return fmt.Errorf("%s failed: %w", operation, err)
}
