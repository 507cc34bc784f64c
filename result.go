package docsdk

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Header is a single response header line.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered list of response headers.
type Headers []Header

// headersFrom flattens an http.Header into a deterministic order: canonical
// names ascending, values per name in received order.
func headersFrom(h http.Header) Headers {
	if len(h) == 0 {
		return nil
	}

	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Headers, 0, len(h))
	for _, name := range names {
		for _, v := range h[name] {
			out = append(out, Header{Name: name, Value: v})
		}
	}
	return out
}

// Get returns the first value for name, case-insensitively.
func (h Headers) Get(name string) string {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Name, name) {
			return hdr.Value
		}
	}
	return ""
}

// Values returns every value for name, case-insensitively.
func (h Headers) Values(name string) []string {
	var vals []string
	for _, hdr := range h {
		if strings.EqualFold(hdr.Name, name) {
			vals = append(vals, hdr.Value)
		}
	}
	return vals
}

// Result is the outcome of one API call: the HTTP status, the response
// headers and, depending on the expected type, a decoded body.
//
// A non-2xx status is data, not an error: the call returns a Result whose
// ErrorBody holds whatever JSON the server sent.
type Result[T any] struct {
	status    int
	headers   Headers
	body      T
	hasBody   bool
	errorBody map[string]any
}

func (r *Result[T]) Status() int { return r.status }

func (r *Result[T]) Headers() Headers { return r.headers }

// Body returns the decoded body, or the zero value of T when there is none.
func (r *Result[T]) Body() T { return r.body }

func (r *Result[T]) HasBody() bool { return r.hasBody }

// ErrorBody is the best-effort decoded payload of a response handled by the
// default processor. Nil when the body was empty or not JSON.
func (r *Result[T]) ErrorBody() map[string]any { return r.errorBody }

// IsSuccess reports whether the status is in the 2xx range.
func (r *Result[T]) IsSuccess() bool { return isSuccessStatus(r.status) }

// Err returns an *APIError for non-2xx results and nil otherwise.
func (r *Result[T]) Err() error {
	if r.IsSuccess() {
		return nil
	}

	apiErr := &APIError{Status: r.status, Body: r.errorBody}
	if len(r.errorBody) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `mapstructure:"message"`
		Error   string `mapstructure:"error"`
		Code    string `mapstructure:"code"`
		Errors  any    `mapstructure:"errors"`
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err == nil && decoder.Decode(r.errorBody) == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
		apiErr.Code = payload.Code
		apiErr.Fields, _ = payload.Errors.(map[string]any)
	}
	return apiErr
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status <= 299
}
