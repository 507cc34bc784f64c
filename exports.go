package docsdk

import "context"

// Exports groups the /export endpoints.
type Exports struct {
	executor *requestExecutor
}

func (e *Exports) create(ctx context.Context, body any, segments ...string) (*Result[*TaskResponse], error) {
	segments = append([]string{SegmentExport}, segments...)
	return execute[*TaskResponse](ctx, e.executor, post(segments...).withBody(body), TypeTask)
}

// URL creates temporary download URLs for the input files.
func (e *Exports) URL(ctx context.Context, req URLExportRequest) (*Result[*TaskResponse], error) {
	return e.create(ctx, req, SegmentURL)
}

func (e *Exports) S3(ctx context.Context, req S3ExportRequest) (*Result[*TaskResponse], error) {
	return e.create(ctx, req, SegmentS3)
}

func (e *Exports) AzureBlob(ctx context.Context, req AzureBlobExportRequest) (*Result[*TaskResponse], error) {
	return e.create(ctx, req, SegmentAzure, SegmentBlob)
}

func (e *Exports) GoogleCloudStorage(ctx context.Context, req GoogleCloudStorageExportRequest) (*Result[*TaskResponse], error) {
	return e.create(ctx, req, SegmentGoogleCloud)
}

func (e *Exports) OpenStack(ctx context.Context, req OpenStackExportRequest) (*Result[*TaskResponse], error) {
	return e.create(ctx, req, SegmentOpenStack)
}

func (e *Exports) SFTP(ctx context.Context, req SFTPExportRequest) (*Result[*TaskResponse], error) {
	return e.create(ctx, req, SegmentSFTP)
}
