package docsdk

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ResponseType names the shape a caller expects a response body to take. It
// selects the processor for 2xx responses and guides decoding.
type ResponseType int

const (
	TypeVoid ResponseType = iota + 1
	TypeStream
	TypeMap
	TypeTask
	TypeJob
	TypeUser
	TypeWebhook
	TypeOperationPage
	TypeTaskPage
	TypeJobPage
	TypeWebhookPage
)

var responseTypeNames = map[ResponseType]string{
	TypeVoid:          "void",
	TypeStream:        "stream",
	TypeMap:           "map",
	TypeTask:          "task",
	TypeJob:           "job",
	TypeUser:          "user",
	TypeWebhook:       "webhook",
	TypeOperationPage: "operation page",
	TypeTaskPage:      "task page",
	TypeJobPage:       "job page",
	TypeWebhookPage:   "webhook page",
}

func (t ResponseType) String() string {
	if name, ok := responseTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// entity reports whether t is a single resource that the API may wrap in a
// {"data": {...}} envelope.
func (t ResponseType) entity() bool {
	switch t {
	case TypeTask, TypeJob, TypeUser, TypeWebhook:
		return true
	default:
		return false
	}
}

// ResultExtractor turns raw HTTP responses into Results. The processor table
// is fixed at construction, so one extractor can serve concurrent calls.
type ResultExtractor struct {
	defaultProcessor responseProcessor
	processors       map[ResponseType]responseProcessor
}

func NewResultExtractor() *ResultExtractor {
	content := contentProcessor{}

	return &ResultExtractor{
		defaultProcessor: defaultProcessor{},
		processors: map[ResponseType]responseProcessor{
			TypeVoid:   noContentProcessor{},
			TypeStream: streamProcessor{},

			TypeMap:     content,
			TypeTask:    content,
			TypeJob:     content,
			TypeUser:    content,
			TypeWebhook: content,

			TypeOperationPage: content,
			TypeTaskPage:      content,
			TypeJobPage:       content,
			TypeWebhookPage:   content,
		},
	}
}

// processorFor picks the processor for a response. Any non-2xx status goes to
// the default processor whatever the expected type.
func (x *ResultExtractor) processorFor(status int, typ ResponseType) responseProcessor {
	if !isSuccessStatus(status) {
		return x.defaultProcessor
	}
	if p, ok := x.processors[typ]; ok {
		return p
	}
	return x.defaultProcessor
}

// Extract builds a Result from resp. The body is closed before returning,
// except when a stream result hands it to the caller.
func Extract[T any](x *ResultExtractor, resp *http.Response, typ ResponseType) (*Result[T], error) {
	if resp == nil {
		return nil, errors.New("extract: nil response")
	}

	body := resp.Body
	if body == nil {
		body = http.NoBody
	}
	headers := headersFrom(resp.Header)

	var dst T
	out, err := x.extract(resp.StatusCode, headers, body, typ, &dst)
	if err != nil {
		return nil, err
	}

	return &Result[T]{
		status:    resp.StatusCode,
		headers:   headers,
		body:      dst,
		hasBody:   out.hasBody,
		errorBody: out.errorBody,
	}, nil
}

func (x *ResultExtractor) extract(status int, headers Headers, body io.ReadCloser, typ ResponseType, dst any) (out outcome, err error) {
	defer func() {
		if err == nil && out.detached {
			return
		}
		if closeErr := body.Close(); closeErr != nil && err == nil && isSuccessStatus(status) {
			err = fmt.Errorf("close response body: %w", closeErr)
		}
	}()

	return x.processorFor(status, typ).process(status, headers, body, typ, dst)
}
