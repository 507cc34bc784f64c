package docsdk

import (
	"context"
	"io"
	"time"
)

// Info provides metadata about the client
type Info interface {
	Name() string
	Version() string
}

// JobsAPI creates and inspects jobs.
type JobsAPI interface {
	Create(ctx context.Context, tasks map[string]TaskRequest, tag string) (*Result[*JobResponse], error)
	Show(ctx context.Context, jobID string) (*Result[*JobResponse], error)
	Wait(ctx context.Context, jobID string) (*Result[*JobResponse], error)
	Poll(ctx context.Context, jobID string, interval time.Duration) (*Result[*JobResponse], error)
	List(ctx context.Context, opts ListOptions) (*Result[*Page[JobResponse]], error)
	Delete(ctx context.Context, jobID string) (*Result[Void], error)
}

// TasksAPI creates single tasks and manages existing ones.
type TasksAPI interface {
	Convert(ctx context.Context, req ConvertRequest) (*Result[*TaskResponse], error)
	Optimize(ctx context.Context, req OptimizeRequest) (*Result[*TaskResponse], error)
	Capture(ctx context.Context, req CaptureWebsiteRequest) (*Result[*TaskResponse], error)
	Archive(ctx context.Context, req ArchiveRequest) (*Result[*TaskResponse], error)
	Command(ctx context.Context, req CommandRequest) (*Result[*TaskResponse], error)
	Thumbnail(ctx context.Context, req ThumbnailRequest) (*Result[*TaskResponse], error)
	Metadata(ctx context.Context, req MetadataRequest) (*Result[*TaskResponse], error)
	WriteMetadata(ctx context.Context, req WriteMetadataRequest) (*Result[*TaskResponse], error)
	Merge(ctx context.Context, req MergeRequest) (*Result[*TaskResponse], error)
	Watermark(ctx context.Context, req WatermarkRequest) (*Result[*TaskResponse], error)
	ConvertFormats(ctx context.Context, opts OperationOptions) (*Result[*Page[OperationResponse]], error)
	Operations(ctx context.Context, opts OperationOptions) (*Result[*Page[OperationResponse]], error)
	Show(ctx context.Context, taskID string, includes ...Include) (*Result[*TaskResponse], error)
	Wait(ctx context.Context, taskID string) (*Result[*TaskResponse], error)
	Poll(ctx context.Context, taskID string, interval time.Duration) (*Result[*TaskResponse], error)
	List(ctx context.Context, opts ListOptions) (*Result[*Page[TaskResponse]], error)
	Cancel(ctx context.Context, taskID string) (*Result[*TaskResponse], error)
	Retry(ctx context.Context, taskID string) (*Result[*TaskResponse], error)
	Delete(ctx context.Context, taskID string) (*Result[Void], error)
}

// ImportsAPI brings input files into the API.
type ImportsAPI interface {
	URL(ctx context.Context, req URLImportRequest) (*Result[*TaskResponse], error)
	Upload(ctx context.Context, req UploadImportRequest) (*Result[*TaskResponse], error)
	UploadFile(ctx context.Context, req UploadImportRequest, filename string, r io.Reader) (*Result[*TaskResponse], error)
	S3(ctx context.Context, req S3ImportRequest) (*Result[*TaskResponse], error)
	AzureBlob(ctx context.Context, req AzureBlobImportRequest) (*Result[*TaskResponse], error)
	GoogleCloudStorage(ctx context.Context, req GoogleCloudStorageImportRequest) (*Result[*TaskResponse], error)
	OpenStack(ctx context.Context, req OpenStackImportRequest) (*Result[*TaskResponse], error)
	SFTP(ctx context.Context, req SFTPImportRequest) (*Result[*TaskResponse], error)
}

// ExportsAPI hands output files to the caller or to cloud storage.
type ExportsAPI interface {
	URL(ctx context.Context, req URLExportRequest) (*Result[*TaskResponse], error)
	S3(ctx context.Context, req S3ExportRequest) (*Result[*TaskResponse], error)
	AzureBlob(ctx context.Context, req AzureBlobExportRequest) (*Result[*TaskResponse], error)
	GoogleCloudStorage(ctx context.Context, req GoogleCloudStorageExportRequest) (*Result[*TaskResponse], error)
	OpenStack(ctx context.Context, req OpenStackExportRequest) (*Result[*TaskResponse], error)
	SFTP(ctx context.Context, req SFTPExportRequest) (*Result[*TaskResponse], error)
}

// Downloader handles file download operations
type Downloader interface {
	Download(ctx context.Context, url string) (*Result[io.ReadCloser], error)
	DownloadTo(ctx context.Context, url string, dst io.Writer) (int64, error)
}

type WebhooksAPI interface {
	Create(ctx context.Context, req WebhookRequest) (*Result[*WebhookResponse], error)
	List(ctx context.Context, opts ListOptions) (*Result[*Page[WebhookResponse]], error)
	Delete(ctx context.Context, webhookID string) (*Result[Void], error)
	Verify(payload []byte, signature string) (bool, error)
}

type UsersAPI interface {
	Me(ctx context.Context) (*Result[*UserResponse], error)
}

var (
	_ Info        = (*Client)(nil)
	_ JobsAPI     = (*Jobs)(nil)
	_ TasksAPI    = (*Tasks)(nil)
	_ ImportsAPI  = (*Imports)(nil)
	_ ExportsAPI  = (*Exports)(nil)
	_ Downloader  = (*Files)(nil)
	_ WebhooksAPI = (*Webhooks)(nil)
	_ UsersAPI    = (*Users)(nil)
)
