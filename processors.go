package docsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// outcome is what a processor reports back to the extractor.
type outcome struct {
	hasBody   bool
	errorBody map[string]any
	// detached means the body now belongs to the caller and must stay open.
	detached bool
}

type responseProcessor interface {
	process(status int, headers Headers, body io.ReadCloser, typ ResponseType, dst any) (outcome, error)
}

// contentProcessor decodes a JSON body into dst.
type contentProcessor struct{}

func (contentProcessor) process(status int, headers Headers, body io.ReadCloser, typ ResponseType, dst any) (outcome, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return outcome{}, fmt.Errorf("read %s response body: %w", typ, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return outcome{}, &DeserializationError{Status: status, Headers: headers, Type: typ}
	}

	if typ.entity() {
		raw = unwrapData(raw)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return outcome{}, &DeserializationError{Status: status, Headers: headers, Type: typ, Err: err}
	}

	return outcome{hasBody: true}, nil
}

// unwrapData strips a {"data": {...}} envelope around a single entity.
func unwrapData(raw []byte) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope) != 1 {
		return raw
	}

	inner, ok := envelope["data"]
	if !ok {
		return raw
	}

	inner = bytes.TrimSpace(inner)
	if len(inner) == 0 || inner[0] != '{' {
		return raw
	}
	return inner
}

// noContentProcessor ignores the body entirely.
type noContentProcessor struct{}

func (noContentProcessor) process(int, Headers, io.ReadCloser, ResponseType, any) (outcome, error) {
	return outcome{}, nil
}

// streamProcessor hands the unread body to the caller.
type streamProcessor struct{}

func (streamProcessor) process(_ int, _ Headers, body io.ReadCloser, typ ResponseType, dst any) (outcome, error) {
	target, ok := dst.(*io.ReadCloser)
	if !ok {
		return outcome{}, fmt.Errorf("%w: %s result needs io.ReadCloser, got %T", ErrTypeMismatch, typ, dst)
	}

	*target = body
	return outcome{hasBody: true, detached: true}, nil
}

// defaultProcessor handles error statuses and unregistered types. It never
// fails: an empty or unparsable body just yields a result without a body.
type defaultProcessor struct{}

func (defaultProcessor) process(_ int, _ Headers, body io.ReadCloser, _ ResponseType, _ any) (outcome, error) {
	raw, err := io.ReadAll(body)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return outcome{}, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return outcome{}, nil
	}

	return outcome{errorBody: payload}, nil
}
