package docsdk

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAsyncClient(t *testing.T, handler http.Handler, opts ...Option) *AsyncClient {
	t.Helper()
	c := newTestClient(t, handler, opts...).Async()
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestAsyncShowMatchesSync(t *testing.T) {
	c := newTestAsyncClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"data": map[string]any{"id": "t1", "status": "finished"}})
	}))
	ctx := context.Background()

	future := c.Tasks().Show(ctx, "t1")
	result, err := future.Get(ctx)
	require.NoError(t, err)
	assert.True(t, future.Ready())
	assert.Equal(t, "t1", result.Body().ID)

	syncResult, err := c.Sync().Tasks().Show(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, syncResult.Body(), result.Body())
	assert.Equal(t, syncResult.Status(), result.Status())
}

func TestAsyncErrorStatusIsAResult(t *testing.T) {
	c := newTestAsyncClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"message": "Unauthenticated."})
	}))

	result, err := c.Users().Me(context.Background()).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, result.Status())
	assert.Equal(t, "Unauthenticated.", result.ErrorBody()["message"])
}

func TestAsyncDeserializationErrorSurfacesFromFuture(t *testing.T) {
	c := newTestAsyncClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	}))

	_, err := c.Jobs().Show(context.Background(), "j1").Get(context.Background())
	assert.ErrorIs(t, err, ErrDeserialization)
}

func TestAsyncRespectsWorkerLimit(t *testing.T) {
	var (
		running atomic.Int32
		peak    atomic.Int32
		release = make(chan struct{})
	)

	c := newTestAsyncClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		running.Add(-1)
		writeJSON(t, w, http.StatusOK, map[string]any{"data": map[string]any{"id": "j", "status": "finished"}})
	}), WithWorkers(2))

	ctx := context.Background()
	futures := make([]*Future[*JobResponse], 6)
	for i := range futures {
		futures[i] = c.Jobs().Show(ctx, "j")
	}

	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, running.Load(), int32(2))
	close(release)

	for _, f := range futures {
		result, err := f.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatusFinished, result.Body().Status)
	}
	assert.Equal(t, int32(2), peak.Load())
}

func TestAsyncDownloadLeavesStreamToCaller(t *testing.T) {
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "payload")
	}))
	t.Cleanup(files.Close)

	c := newTestAsyncClient(t, http.NotFoundHandler())

	result, err := c.Files().Download(context.Background(), files.URL+"/out.txt").Get(context.Background())
	require.NoError(t, err)

	body := result.Body()
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestFutureGetHonoursContext(t *testing.T) {
	f := newFuture[Void]()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.Ready())

	f.complete(&Result[Void]{status: 204}, nil)
	<-f.Done()
	result, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 204, result.Status())
}

func TestWorkerPoolRecoversPanics(t *testing.T) {
	p := newWorkerPool(1)
	f := submit(p, context.Background(), func(context.Context) (*Result[Void], error) {
		panic("boom")
	})

	_, err := f.Get(context.Background())
	assert.ErrorContains(t, err, "boom")
	p.close()
}

func TestWorkerPoolCloseWaitsAndRejects(t *testing.T) {
	p := newWorkerPool(2)

	var done sync.WaitGroup
	done.Add(1)
	var finished atomic.Bool
	f := submit(p, context.Background(), func(context.Context) (*Result[Void], error) {
		defer done.Done()
		time.Sleep(30 * time.Millisecond)
		finished.Store(true)
		return &Result[Void]{status: 204}, nil
	})

	p.close()
	assert.True(t, finished.Load())
	assert.True(t, f.Ready())

	_, err := submit(p, context.Background(), func(context.Context) (*Result[Void], error) {
		return nil, errors.New("must not run")
	}).Get(context.Background())
	assert.ErrorIs(t, err, ErrClientClosed)
	done.Wait()
}

func TestWorkerPoolQueuedCallGivesUpWithContext(t *testing.T) {
	p := newWorkerPool(1)
	block := make(chan struct{})

	first := submit(p, context.Background(), func(context.Context) (*Result[Void], error) {
		<-block
		return &Result[Void]{status: 200}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	second := submit(p, ctx, func(context.Context) (*Result[Void], error) {
		return &Result[Void]{status: 200}, nil
	})

	_, err := second.Get(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
	_, err = first.Get(context.Background())
	require.NoError(t, err)
	p.close()
}
