package docsdk

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(HeaderAuthorization), "downloads must not carry the api key")
		switch r.URL.Path {
		case "/files/out.pdf":
			assert.Equal(t, "1", r.URL.Query().Get("a"))
			assert.Equal(t, "2", r.URL.Query().Get("b"))
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = io.WriteString(w, "%PDF-1.7 converted")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloadStreamsBody(t *testing.T) {
	srv := newFileServer(t)
	c, err := NewClient(Settings{Key: testAPIKey})
	require.NoError(t, err)

	result, err := c.Files().Download(context.Background(), srv.URL+"/files/out.pdf?a=1\\u0026b=2")
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	assert.Equal(t, "application/pdf", result.Headers().Get("Content-Type"))

	body := result.Body()
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 converted", string(data))
}

func TestDownloadTo(t *testing.T) {
	srv := newFileServer(t)
	c, err := NewClient(Settings{Key: testAPIKey})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.Files().DownloadTo(context.Background(), srv.URL+"/files/out.pdf?a=1&b=2", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("%PDF-1.7 converted")), n)
	assert.Equal(t, "%PDF-1.7 converted", buf.String())
}

func TestDownloadToMissingFile(t *testing.T) {
	srv := newFileServer(t)
	c, err := NewClient(Settings{Key: testAPIKey})
	require.NoError(t, err)

	_, err = c.Files().DownloadTo(context.Background(), srv.URL+"/files/missing.pdf", io.Discard)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestDownloadToNilWriter(t *testing.T) {
	c, err := NewClient(Settings{Key: testAPIKey})
	require.NoError(t, err)

	_, err = c.Files().DownloadTo(context.Background(), "https://example.com/a", nil)
	assert.ErrorIs(t, err, ErrNilWriter)
}
