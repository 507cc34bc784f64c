package docsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Settings{Key: testAPIKey, SigningSecret: "secret", URL: srv.URL}, opts...)
	require.NoError(t, err)
	return c
}

// newTestRestyClient skips the retries of the default client.
func newTestRestyClient() *resty.Client {
	return resty.New()
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Settings{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewClient(nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClientInfo(t *testing.T) {
	c, err := NewClient(Settings{Key: testAPIKey})
	require.NoError(t, err)
	assert.Equal(t, "docsdk", c.Name())
	assert.Equal(t, "v2", c.Version())
}

func TestUsersMeSendsAuthAndUserAgent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/users/me", r.URL.Path)
		assert.Equal(t, "Bearer "+testAPIKey, r.Header.Get(HeaderAuthorization))
		assert.Equal(t, ValueUserAgent, r.Header.Get(HeaderUserAgent))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": map[string]any{"id": 7, "username": "alice", "email": "alice@example.com", "credits": 120},
		})
	}))

	result, err := c.Users().Me(context.Background())
	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	user := result.Body()
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, 120, user.Credits)
}

func TestJobsCreateAddsOperationToEveryTask(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/jobs", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body := decodeBody(t, r)
		assert.Equal(t, "invoices", body["tag"])

		tasks := body["tasks"].(map[string]any)
		importTask := tasks["import-it"].(map[string]any)
		assert.Equal(t, "import/url", importTask["operation"])
		assert.Equal(t, "https://example.com/a.docx", importTask["url"])

		convertTask := tasks["convert-it"].(map[string]any)
		assert.Equal(t, "convert", convertTask["operation"])
		assert.Equal(t, "import-it", convertTask["input"])
		assert.Equal(t, "pdf", convertTask["output_format"])
		assert.Equal(t, true, convertTask["pdf_a"])

		raw := tasks["raw"].(map[string]any)
		assert.Equal(t, "optimize", raw["operation"])

		writeJSON(t, w, http.StatusCreated, map[string]any{
			"data": map[string]any{"id": "job-1", "tag": "invoices", "status": "waiting"},
		})
	}))

	result, err := c.Jobs().Create(context.Background(), map[string]TaskRequest{
		"import-it": URLImportRequest{URL: "https://example.com/a.docx"},
		"convert-it": ConvertRequest{
			Input:        "import-it",
			OutputFormat: "pdf",
			Options:      map[string]any{"pdf_a": true},
		},
		"raw": RawTask{Op: OperationOptimize, Fields: map[string]any{"operation": "wrong", "input": "convert-it"}},
	}, "invoices")
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, result.Status())
	assert.Equal(t, "job-1", result.Body().ID)
	assert.Equal(t, StatusWaiting, result.Body().Status)
}

func TestJobsCreateRejectsEmptyTasks(t *testing.T) {
	c, err := NewClient(Settings{Key: testAPIKey})
	require.NoError(t, err)

	_, err = c.Jobs().Create(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrEmptyTasks)
}

func TestJobCreateRejectsNilTask(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	}), WithRestyClient(newTestRestyClient()))

	tasks := map[string]TaskRequest{
		"import": URLImportRequest{URL: "https://example.com/a.docx"},
		"broken": nil,
	}

	var err error
	require.NotPanics(t, func() {
		_, err = c.Jobs().Create(context.Background(), tasks, "")
	})
	assert.ErrorIs(t, err, ErrNilRequest)
	assert.Contains(t, err.Error(), `"broken"`)
	assert.Zero(t, calls.Load())
}

func TestJobTaskMarshalNilTask(t *testing.T) {
	_, err := json.Marshal(jobTask{})
	assert.ErrorIs(t, err, ErrNilRequest)
}

func TestEmptyIDsAreRejectedBeforeSending(t *testing.T) {
	c, err := NewClient(Settings{Key: testAPIKey, URL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Jobs().Show(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = c.Jobs().Delete(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = c.Tasks().Wait(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = c.Tasks().Cancel(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = c.Webhooks().Delete(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
	_, err = c.Files().Download(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyDownloadURL)
}

func TestJobsListQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/jobs", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "error", q.Get("filter[status]"))
		assert.Equal(t, "tasks", q.Get("include"))
		assert.Equal(t, "10", q.Get("per_page"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []any{
				map[string]any{"id": "j1", "status": "error"},
				map[string]any{"id": "j2", "status": "error"},
			},
			"links": map[string]any{"next": "https://api.docsdk.com/v2/jobs?page=2"},
			"meta":  map[string]any{"current_page": 1, "per_page": 10},
		})
	}))

	result, err := c.Jobs().List(context.Background(), ListOptions{
		Filters:    Filters{FilterStatus: string(StatusError)},
		Includes:   []Include{IncludeTasks},
		Pagination: &Pagination{PerPage: 10},
	})
	require.NoError(t, err)

	page := result.Body()
	require.Len(t, page.Data, 2)
	assert.Equal(t, "j2", page.Data[1].ID)
	assert.Equal(t, 1, page.Meta.CurrentPage)
	assert.NotEmpty(t, page.Links.Next)
}

func TestTaskEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		call   func(c *Client) (*Result[*TaskResponse], error)
	}{
		{"convert", http.MethodPost, "/v2/convert", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Convert(context.Background(), ConvertRequest{Input: "t0", OutputFormat: "pdf"})
		}},
		{"optimize", http.MethodPost, "/v2/optimize", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Optimize(context.Background(), OptimizeRequest{Input: "t0"})
		}},
		{"capture", http.MethodPost, "/v2/capture-website", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Capture(context.Background(), CaptureWebsiteRequest{URL: "https://example.com", OutputFormat: "pdf"})
		}},
		{"archive", http.MethodPost, "/v2/archive", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Archive(context.Background(), ArchiveRequest{Input: []string{"a", "b"}, OutputFormat: "zip"})
		}},
		{"thumbnail", http.MethodPost, "/v2/thumbnail", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Thumbnail(context.Background(), ThumbnailRequest{Input: "t0", OutputFormat: "png"})
		}},
		{"metadata write", http.MethodPost, "/v2/metadata/write", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().WriteMetadata(context.Background(), WriteMetadataRequest{Input: "t0"})
		}},
		{"merge", http.MethodPost, "/v2/merge", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Merge(context.Background(), MergeRequest{Input: []string{"a", "b"}, OutputFormat: "pdf"})
		}},
		{"watermark", http.MethodPost, "/v2/watermark", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Watermark(context.Background(), WatermarkRequest{Input: "t0", Text: "draft"})
		}},
		{"show", http.MethodGet, "/v2/tasks/t1", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Show(context.Background(), "t1")
		}},
		{"wait", http.MethodGet, "/v2/tasks/t1/wait", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Wait(context.Background(), "t1")
		}},
		{"cancel", http.MethodPost, "/v2/tasks/t1/cancel", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Cancel(context.Background(), "t1")
		}},
		{"retry", http.MethodPost, "/v2/tasks/t1/retry", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Tasks().Retry(context.Background(), "t1")
		}},
		{"import url", http.MethodPost, "/v2/import/url", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Import().URL(context.Background(), URLImportRequest{URL: "https://example.com/a.pdf"})
		}},
		{"import azure", http.MethodPost, "/v2/import/azure/blob", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Import().AzureBlob(context.Background(), AzureBlobImportRequest{StorageAccount: "acc", Container: "c"})
		}},
		{"import gcs", http.MethodPost, "/v2/import/google-cloud-storage", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Import().GoogleCloudStorage(context.Background(), GoogleCloudStorageImportRequest{Bucket: "b"})
		}},
		{"export url", http.MethodPost, "/v2/export/url", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Export().URL(context.Background(), URLExportRequest{Input: "t1"})
		}},
		{"export s3", http.MethodPost, "/v2/export/s3", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Export().S3(context.Background(), S3ExportRequest{Input: "t1", Bucket: "b", Region: "eu-west-1"})
		}},
		{"export sftp", http.MethodPost, "/v2/export/sftp", func(c *Client) (*Result[*TaskResponse], error) {
			return c.Export().SFTP(context.Background(), SFTPExportRequest{Input: "t1", Host: "sftp.example.com", Username: "u"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.method, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				writeJSON(t, w, http.StatusCreated, map[string]any{
					"data": map[string]any{"id": "t1", "status": "waiting"},
				})
			}))

			result, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, "t1", result.Body().ID)
		})
	}
}

func TestTasksShowIncludes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "retries,payload", r.URL.Query().Get("include"))
		writeJSON(t, w, http.StatusOK, map[string]any{"data": map[string]any{"id": "t1", "status": "finished"}})
	}))

	result, err := c.Tasks().Show(context.Background(), "t1", IncludeRetries, IncludePayload)
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, result.Body().Status)
}

func TestConvertFormats(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/convert/formats", r.URL.Path)
		assert.Equal(t, "docx", r.URL.Query().Get("filter[input_format]"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []any{map[string]any{
				"operation": "convert", "input_format": "docx", "output_format": "pdf", "engine": "office", "credits": 1,
			}},
		})
	}))

	result, err := c.Tasks().ConvertFormats(context.Background(), OperationOptions{
		Filters: Filters{FilterInputFormat: "docx"},
	})
	require.NoError(t, err)
	require.Len(t, result.Body().Data, 1)
	assert.Equal(t, "office", result.Body().Data[0].Engine)
}

func TestNotFoundIsAResultNotAnError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{"message": "Task not found", "code": "NOT_FOUND"})
	}))

	result, err := c.Tasks().Show(context.Background(), "missing")
	require.NoError(t, err)

	assert.False(t, result.IsSuccess())
	assert.Equal(t, http.StatusNotFound, result.Status())
	assert.Nil(t, result.Body())
	assert.Equal(t, "Task not found", result.ErrorBody()["message"])

	var apiErr *APIError
	require.ErrorAs(t, result.Err(), &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestDeleteReturnsVoid(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v2/jobs/j1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	result, err := c.Jobs().Delete(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, result.Status())
	assert.False(t, result.HasBody())
}

func TestMalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data": "oops"`)
	}))

	_, err := c.Jobs().Show(context.Background(), "j1")
	assert.ErrorIs(t, err, ErrDeserialization)
}

func TestTransportFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(Settings{Key: testAPIKey, URL: url}, WithRestyClient(newTestRestyClient()))
	require.NoError(t, err)

	_, err = c.Users().Me(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDeserialization)
	assert.ErrorContains(t, err, "GET /v2/users/me failed")
}
