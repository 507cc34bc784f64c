package docsdk

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadersFromSortsNamesAndKeepsValueOrder(t *testing.T) {
	h := http.Header{}
	h.Add("X-Trace", "b")
	h.Add("Content-Type", "application/json")
	h.Add("X-Trace", "a")

	headers := headersFrom(h)

	assert.Equal(t, Headers{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "X-Trace", Value: "b"},
		{Name: "X-Trace", Value: "a"},
	}, headers)
	assert.Equal(t, "b", headers.Get("x-trace"))
	assert.Equal(t, []string{"b", "a"}, headers.Values("X-TRACE"))
	assert.Empty(t, headers.Get("missing"))
}

func TestHeadersFromEmpty(t *testing.T) {
	assert.Nil(t, headersFrom(nil))
}

func TestResultErr(t *testing.T) {
	tests := []struct {
		name    string
		result  *Result[Void]
		wantNil bool
		message string
		code    string
		fields  map[string]any
	}{
		{
			name:    "success",
			result:  &Result[Void]{status: 204},
			wantNil: true,
		},
		{
			name:   "no body",
			result: &Result[Void]{status: 500},
		},
		{
			name: "message and code",
			result: &Result[Void]{status: 422, errorBody: map[string]any{
				"message": "The given data was invalid.",
				"code":    "INVALID_DATA",
				"errors":  map[string]any{"tasks": []any{"required"}},
			}},
			message: "The given data was invalid.",
			code:    "INVALID_DATA",
			fields:  map[string]any{"tasks": []any{"required"}},
		},
		{
			name:    "error key",
			result:  &Result[Void]{status: 401, errorBody: map[string]any{"error": "Unauthenticated."}},
			message: "Unauthenticated.",
		},
		{
			name:    "numeric code",
			result:  &Result[Void]{status: 429, errorBody: map[string]any{"code": float64(429)}},
			code:    "429",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Err()
			if tt.wantNil {
				assert.NoError(t, err)
				return
			}

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.result.Status(), apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.fields, apiErr.Fields)
		})
	}
}

func TestAPIErrorMessageAndTemporary(t *testing.T) {
	assert.Equal(t, "api returned status 404", (&APIError{Status: 404}).Error())
	assert.Equal(t, "api returned status 402: no credits", (&APIError{Status: 402, Message: "no credits"}).Error())
	assert.Equal(t, "api returned status 422 (INVALID): bad", (&APIError{Status: 422, Code: "INVALID", Message: "bad"}).Error())

	assert.True(t, (&APIError{Status: 429}).Temporary())
	assert.True(t, (&APIError{Status: 502}).Temporary())
	assert.False(t, (&APIError{Status: 404}).Temporary())
}

func TestIsSuccess(t *testing.T) {
	assert.False(t, (&Result[Void]{status: 199}).IsSuccess())
	assert.True(t, (&Result[Void]{status: 200}).IsSuccess())
	assert.True(t, (&Result[Void]{status: 299}).IsSuccess())
	assert.False(t, (&Result[Void]{status: 300}).IsSuccess())
}
