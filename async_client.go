package docsdk

import (
	"context"
	"io"
	"time"
)

// AsyncClient runs every Client call on a bounded worker pool and returns a
// Future right away. Concurrent calls are independent and complete in any
// order.
type AsyncClient struct {
	client *Client
	pool   *workerPool

	jobs     *AsyncJobs
	tasks    *AsyncTasks
	imports  *AsyncImports
	exports  *AsyncExports
	files    *AsyncFiles
	webhooks *AsyncWebhooks
	users    *AsyncUsers
}

// NewAsyncClient builds a Client with the same options and wraps it. The
// pool size comes from WithWorkers.
func NewAsyncClient(settings SettingsProvider, opts ...Option) (*AsyncClient, error) {
	client, err := NewClient(settings, opts...)
	if err != nil {
		return nil, err
	}
	return client.Async(), nil
}

// Async returns an AsyncClient sharing c's transport and settings.
func (c *Client) Async() *AsyncClient {
	pool := newWorkerPool(c.workers)
	return &AsyncClient{
		client:   c,
		pool:     pool,
		jobs:     &AsyncJobs{jobs: c.jobs, pool: pool},
		tasks:    &AsyncTasks{tasks: c.tasks, pool: pool},
		imports:  &AsyncImports{imports: c.imports, pool: pool},
		exports:  &AsyncExports{exports: c.exports, pool: pool},
		files:    &AsyncFiles{files: c.files, pool: pool},
		webhooks: &AsyncWebhooks{webhooks: c.webhooks, pool: pool},
		users:    &AsyncUsers{users: c.users, pool: pool},
	}
}

func (c *AsyncClient) Name() string    { return ServiceName }
func (c *AsyncClient) Version() string { return APIVersion }

// Sync returns the blocking client behind c.
func (c *AsyncClient) Sync() *Client { return c.client }

func (c *AsyncClient) Jobs() *AsyncJobs         { return c.jobs }
func (c *AsyncClient) Tasks() *AsyncTasks       { return c.tasks }
func (c *AsyncClient) Import() *AsyncImports    { return c.imports }
func (c *AsyncClient) Export() *AsyncExports    { return c.exports }
func (c *AsyncClient) Files() *AsyncFiles       { return c.files }
func (c *AsyncClient) Webhooks() *AsyncWebhooks { return c.webhooks }
func (c *AsyncClient) Users() *AsyncUsers       { return c.users }

// Close rejects further calls and waits for the running ones.
func (c *AsyncClient) Close() error {
	c.pool.close()
	return nil
}

type AsyncJobs struct {
	jobs *Jobs
	pool *workerPool
}

func (j *AsyncJobs) Create(ctx context.Context, tasks map[string]TaskRequest, tag string) *Future[*JobResponse] {
	return submit(j.pool, ctx, func(ctx context.Context) (*Result[*JobResponse], error) {
		return j.jobs.Create(ctx, tasks, tag)
	})
}

func (j *AsyncJobs) Show(ctx context.Context, jobID string) *Future[*JobResponse] {
	return submit(j.pool, ctx, func(ctx context.Context) (*Result[*JobResponse], error) {
		return j.jobs.Show(ctx, jobID)
	})
}

func (j *AsyncJobs) Wait(ctx context.Context, jobID string) *Future[*JobResponse] {
	return submit(j.pool, ctx, func(ctx context.Context) (*Result[*JobResponse], error) {
		return j.jobs.Wait(ctx, jobID)
	})
}

// Poll holds a worker for the whole polling loop.
func (j *AsyncJobs) Poll(ctx context.Context, jobID string, interval time.Duration) *Future[*JobResponse] {
	return submit(j.pool, ctx, func(ctx context.Context) (*Result[*JobResponse], error) {
		return j.jobs.Poll(ctx, jobID, interval)
	})
}

func (j *AsyncJobs) List(ctx context.Context, opts ListOptions) *Future[*Page[JobResponse]] {
	return submit(j.pool, ctx, func(ctx context.Context) (*Result[*Page[JobResponse]], error) {
		return j.jobs.List(ctx, opts)
	})
}

func (j *AsyncJobs) Delete(ctx context.Context, jobID string) *Future[Void] {
	return submit(j.pool, ctx, func(ctx context.Context) (*Result[Void], error) {
		return j.jobs.Delete(ctx, jobID)
	})
}

type AsyncTasks struct {
	tasks *Tasks
	pool  *workerPool
}

// task submits one of the calls returning a single task.
func (t *AsyncTasks) task(ctx context.Context, call func(context.Context) (*Result[*TaskResponse], error)) *Future[*TaskResponse] {
	return submit(t.pool, ctx, call)
}

func (t *AsyncTasks) Convert(ctx context.Context, req ConvertRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Convert(ctx, req) })
}

func (t *AsyncTasks) Optimize(ctx context.Context, req OptimizeRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Optimize(ctx, req) })
}

func (t *AsyncTasks) Capture(ctx context.Context, req CaptureWebsiteRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Capture(ctx, req) })
}

func (t *AsyncTasks) Archive(ctx context.Context, req ArchiveRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Archive(ctx, req) })
}

func (t *AsyncTasks) Command(ctx context.Context, req CommandRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Command(ctx, req) })
}

func (t *AsyncTasks) Thumbnail(ctx context.Context, req ThumbnailRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Thumbnail(ctx, req) })
}

func (t *AsyncTasks) Metadata(ctx context.Context, req MetadataRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Metadata(ctx, req) })
}

func (t *AsyncTasks) WriteMetadata(ctx context.Context, req WriteMetadataRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.WriteMetadata(ctx, req) })
}

func (t *AsyncTasks) Merge(ctx context.Context, req MergeRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Merge(ctx, req) })
}

func (t *AsyncTasks) Watermark(ctx context.Context, req WatermarkRequest) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Watermark(ctx, req) })
}

func (t *AsyncTasks) ConvertFormats(ctx context.Context, opts OperationOptions) *Future[*Page[OperationResponse]] {
	return submit(t.pool, ctx, func(ctx context.Context) (*Result[*Page[OperationResponse]], error) {
		return t.tasks.ConvertFormats(ctx, opts)
	})
}

func (t *AsyncTasks) Operations(ctx context.Context, opts OperationOptions) *Future[*Page[OperationResponse]] {
	return submit(t.pool, ctx, func(ctx context.Context) (*Result[*Page[OperationResponse]], error) {
		return t.tasks.Operations(ctx, opts)
	})
}

func (t *AsyncTasks) Show(ctx context.Context, taskID string, includes ...Include) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Show(ctx, taskID, includes...) })
}

func (t *AsyncTasks) Wait(ctx context.Context, taskID string) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Wait(ctx, taskID) })
}

func (t *AsyncTasks) Poll(ctx context.Context, taskID string, interval time.Duration) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Poll(ctx, taskID, interval) })
}

func (t *AsyncTasks) List(ctx context.Context, opts ListOptions) *Future[*Page[TaskResponse]] {
	return submit(t.pool, ctx, func(ctx context.Context) (*Result[*Page[TaskResponse]], error) {
		return t.tasks.List(ctx, opts)
	})
}

func (t *AsyncTasks) Cancel(ctx context.Context, taskID string) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Cancel(ctx, taskID) })
}

func (t *AsyncTasks) Retry(ctx context.Context, taskID string) *Future[*TaskResponse] {
	return t.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return t.tasks.Retry(ctx, taskID) })
}

func (t *AsyncTasks) Delete(ctx context.Context, taskID string) *Future[Void] {
	return submit(t.pool, ctx, func(ctx context.Context) (*Result[Void], error) {
		return t.tasks.Delete(ctx, taskID)
	})
}

type AsyncImports struct {
	imports *Imports
	pool    *workerPool
}

func (i *AsyncImports) task(ctx context.Context, call func(context.Context) (*Result[*TaskResponse], error)) *Future[*TaskResponse] {
	return submit(i.pool, ctx, call)
}

func (i *AsyncImports) URL(ctx context.Context, req URLImportRequest) *Future[*TaskResponse] {
	return i.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return i.imports.URL(ctx, req) })
}

func (i *AsyncImports) Upload(ctx context.Context, req UploadImportRequest) *Future[*TaskResponse] {
	return i.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return i.imports.Upload(ctx, req) })
}

// UploadFile reads r on a worker; r must stay valid until the future is done.
func (i *AsyncImports) UploadFile(ctx context.Context, req UploadImportRequest, filename string, r io.Reader) *Future[*TaskResponse] {
	return i.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) {
		return i.imports.UploadFile(ctx, req, filename, r)
	})
}

func (i *AsyncImports) S3(ctx context.Context, req S3ImportRequest) *Future[*TaskResponse] {
	return i.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return i.imports.S3(ctx, req) })
}

func (i *AsyncImports) AzureBlob(ctx context.Context, req AzureBlobImportRequest) *Future[*TaskResponse] {
	return i.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return i.imports.AzureBlob(ctx, req) })
}

func (i *AsyncImports) GoogleCloudStorage(ctx context.Context, req GoogleCloudStorageImportRequest) *Future[*TaskResponse] {
	return i.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) {
		return i.imports.GoogleCloudStorage(ctx, req)
	})
}

func (i *AsyncImports) OpenStack(ctx context.Context, req OpenStackImportRequest) *Future[*TaskResponse] {
	return i.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return i.imports.OpenStack(ctx, req) })
}

func (i *AsyncImports) SFTP(ctx context.Context, req SFTPImportRequest) *Future[*TaskResponse] {
	return i.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return i.imports.SFTP(ctx, req) })
}

type AsyncExports struct {
	exports *Exports
	pool    *workerPool
}

func (e *AsyncExports) task(ctx context.Context, call func(context.Context) (*Result[*TaskResponse], error)) *Future[*TaskResponse] {
	return submit(e.pool, ctx, call)
}

func (e *AsyncExports) URL(ctx context.Context, req URLExportRequest) *Future[*TaskResponse] {
	return e.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return e.exports.URL(ctx, req) })
}

func (e *AsyncExports) S3(ctx context.Context, req S3ExportRequest) *Future[*TaskResponse] {
	return e.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return e.exports.S3(ctx, req) })
}

func (e *AsyncExports) AzureBlob(ctx context.Context, req AzureBlobExportRequest) *Future[*TaskResponse] {
	return e.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return e.exports.AzureBlob(ctx, req) })
}

func (e *AsyncExports) GoogleCloudStorage(ctx context.Context, req GoogleCloudStorageExportRequest) *Future[*TaskResponse] {
	return e.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) {
		return e.exports.GoogleCloudStorage(ctx, req)
	})
}

func (e *AsyncExports) OpenStack(ctx context.Context, req OpenStackExportRequest) *Future[*TaskResponse] {
	return e.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return e.exports.OpenStack(ctx, req) })
}

func (e *AsyncExports) SFTP(ctx context.Context, req SFTPExportRequest) *Future[*TaskResponse] {
	return e.task(ctx, func(ctx context.Context) (*Result[*TaskResponse], error) { return e.exports.SFTP(ctx, req) })
}

type AsyncFiles struct {
	files *Files
	pool  *workerPool
}

// Download resolves to an open body; the caller closes it once the future
// completed successfully.
func (f *AsyncFiles) Download(ctx context.Context, url string) *Future[io.ReadCloser] {
	return submit(f.pool, ctx, func(ctx context.Context) (*Result[io.ReadCloser], error) {
		return f.files.Download(ctx, url)
	})
}

type AsyncWebhooks struct {
	webhooks *Webhooks
	pool     *workerPool
}

func (w *AsyncWebhooks) Create(ctx context.Context, req WebhookRequest) *Future[*WebhookResponse] {
	return submit(w.pool, ctx, func(ctx context.Context) (*Result[*WebhookResponse], error) {
		return w.webhooks.Create(ctx, req)
	})
}

func (w *AsyncWebhooks) List(ctx context.Context, opts ListOptions) *Future[*Page[WebhookResponse]] {
	return submit(w.pool, ctx, func(ctx context.Context) (*Result[*Page[WebhookResponse]], error) {
		return w.webhooks.List(ctx, opts)
	})
}

func (w *AsyncWebhooks) Delete(ctx context.Context, webhookID string) *Future[Void] {
	return submit(w.pool, ctx, func(ctx context.Context) (*Result[Void], error) {
		return w.webhooks.Delete(ctx, webhookID)
	})
}

// Verify needs no network and runs inline.
func (w *AsyncWebhooks) Verify(payload []byte, signature string) (bool, error) {
	return w.webhooks.Verify(payload, signature)
}

type AsyncUsers struct {
	users *Users
	pool  *workerPool
}

func (u *AsyncUsers) Me(ctx context.Context) *Future[*UserResponse] {
	return submit(u.pool, ctx, func(ctx context.Context) (*Result[*UserResponse], error) {
		return u.users.Me(ctx)
	})
}
