package docsdk

import (
	"context"
	"io"
	"net/http"
)

// Imports groups the /import endpoints.
type Imports struct {
	executor *requestExecutor
	tasks    *Tasks
}

func (i *Imports) create(ctx context.Context, body any, segments ...string) (*Result[*TaskResponse], error) {
	segments = append([]string{SegmentImport}, segments...)
	return execute[*TaskResponse](ctx, i.executor, post(segments...).withBody(body), TypeTask)
}

// URL imports a file the API downloads from a public URL.
func (i *Imports) URL(ctx context.Context, req URLImportRequest) (*Result[*TaskResponse], error) {
	return i.create(ctx, req, SegmentURL)
}

// Upload creates an import/upload task. Its result carries the form the
// file must be posted to; UploadFile does both steps.
func (i *Imports) Upload(ctx context.Context, req UploadImportRequest) (*Result[*TaskResponse], error) {
	return i.create(ctx, req, SegmentUpload)
}

// UploadFile creates an import/upload task, posts r to the returned form and
// reports the task state afterwards. A non-2xx status from either API call is
// returned as the Result.
func (i *Imports) UploadFile(ctx context.Context, req UploadImportRequest, filename string, r io.Reader) (*Result[*TaskResponse], error) {
	if r == nil {
		return nil, ErrNilReader
	}

	created, err := i.Upload(ctx, req)
	if err != nil {
		return nil, err
	}
	if !created.IsSuccess() {
		return created, nil
	}

	task := created.Body()
	if task.Result == nil || task.Result.Form == nil || task.Result.Form.URL == "" {
		return nil, ErrMissingUploadForm
	}

	return i.UploadToForm(ctx, task.ID, *task.Result.Form, filename, r)
}

// UploadToForm posts r to an upload form obtained earlier and shows taskID.
// Failed posts are retried only when r is an io.Seeker.
func (i *Imports) UploadToForm(ctx context.Context, taskID string, form UploadForm, filename string, r io.Reader) (*Result[*TaskResponse], error) {
	if taskID == "" {
		return nil, ErrEmptyID
	}
	if r == nil {
		return nil, ErrNilReader
	}
	if filename == "" {
		filename = "file"
	}

	upload := &request{
		method: http.MethodPost,
		rawURL: form.URL,
		form:   form.Parameters,
		file:   &fileUpload{param: "file", name: filename, reader: r},
	}

	uploaded, err := execute[Void](ctx, i.executor, upload, TypeVoid)
	if err != nil {
		return nil, err
	}
	if !uploaded.IsSuccess() {
		return withoutBody[*TaskResponse](uploaded), nil
	}

	return i.tasks.Show(ctx, taskID)
}

func (i *Imports) S3(ctx context.Context, req S3ImportRequest) (*Result[*TaskResponse], error) {
	return i.create(ctx, req, SegmentS3)
}

func (i *Imports) AzureBlob(ctx context.Context, req AzureBlobImportRequest) (*Result[*TaskResponse], error) {
	return i.create(ctx, req, SegmentAzure, SegmentBlob)
}

func (i *Imports) GoogleCloudStorage(ctx context.Context, req GoogleCloudStorageImportRequest) (*Result[*TaskResponse], error) {
	return i.create(ctx, req, SegmentGoogleCloud)
}

func (i *Imports) OpenStack(ctx context.Context, req OpenStackImportRequest) (*Result[*TaskResponse], error) {
	return i.create(ctx, req, SegmentOpenStack)
}

func (i *Imports) SFTP(ctx context.Context, req SFTPImportRequest) (*Result[*TaskResponse], error) {
	return i.create(ctx, req, SegmentSFTP)
}

// withoutBody carries status, headers and error body over to a Result of
// another body type.
func withoutBody[T, U any](r *Result[U]) *Result[T] {
	return &Result[T]{
		status:    r.status,
		headers:   r.headers,
		errorBody: r.errorBody,
	}
}
