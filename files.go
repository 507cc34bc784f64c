package docsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Files downloads task output files.
type Files struct {
	executor *requestExecutor
}

// Download fetches url and returns the body unread. The caller must close
// Body() of a successful result.
func (f *Files) Download(ctx context.Context, url string) (*Result[io.ReadCloser], error) {
	if url == "" {
		return nil, ErrEmptyDownloadURL
	}

	url = strings.ReplaceAll(url, "\\u0026", "&")

	req := &request{method: http.MethodGet, rawURL: url}
	return execute[io.ReadCloser](ctx, f.executor, req, TypeStream)
}

// DownloadTo streams url into dst and returns the number of bytes written.
func (f *Files) DownloadTo(ctx context.Context, url string, dst io.Writer) (int64, error) {
	if dst == nil {
		return 0, ErrNilWriter
	}

	result, err := f.Download(ctx, url)
	if err != nil {
		return 0, err
	}
	if !result.IsSuccess() {
		return 0, errStatus("download "+url, result.Err())
	}

	body := result.Body()
	defer body.Close()

	n, err := io.Copy(dst, body)
	if err != nil {
		return n, fmt.Errorf("write download from %s: %w", url, err)
	}
	return n, nil
}
