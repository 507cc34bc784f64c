package docsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// requestExecutor sends requests and feeds the raw responses to the extractor.
type requestExecutor struct {
	api       *resty.Client
	transfer  *resty.Client
	upload    *resty.Client
	extractor *ResultExtractor
	logger    zerolog.Logger
}

// send performs the HTTP round trip and returns the unread response. The
// caller owns the body.
func (e *requestExecutor) send(ctx context.Context, req *request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	client := e.api
	if req.rawURL != "" {
		client = e.transfer
	}
	if req.file != nil && e.upload != nil {
		if _, ok := req.file.reader.(io.Seeker); !ok {
			client = e.upload
		}
	}

	r := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)

	if len(req.query) > 0 {
		r.SetQueryParamsFromValues(req.query)
	}

	switch {
	case req.file != nil:
		r.SetMultipartFormData(req.form).
			SetFileReader(req.file.param, req.file.name, req.file.reader)
	case req.body != nil:
		r.SetHeader("Content-Type", "application/json").
			SetBody(req.body)
	}

	target := req.target()
	start := time.Now()
	resp, err := r.Execute(req.method, target)
	if err != nil {
		if resp != nil && resp.RawResponse != nil && resp.RawResponse.Body != nil {
			_ = resp.RawResponse.Body.Close()
		}
		return nil, fmt.Errorf("%s %s failed: %w", req.method, target, err)
	}

	e.logger.Debug().
		Str("method", req.method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("docsdk request")

	return resp.RawResponse, nil
}

// execute is the single call path shared by the blocking and async clients.
func execute[T any](ctx context.Context, e *requestExecutor, req *request, typ ResponseType) (*Result[T], error) {
	raw, err := e.send(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := Extract[T](e.extractor, raw, typ)
	if err != nil {
		e.logger.Debug().Err(err).Str("type", typ.String()).Msg("docsdk extract failed")
		return nil, err
	}
	return result, nil
}
