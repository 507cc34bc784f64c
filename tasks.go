package docsdk

import (
	"context"
	"net/url"
	"time"
)

// Tasks groups the task endpoints: one creation endpoint per operation plus
// show, wait, list, cancel, retry and delete.
type Tasks struct {
	executor *requestExecutor
	timeout  time.Duration
}

func (t *Tasks) create(ctx context.Context, body any, segments ...string) (*Result[*TaskResponse], error) {
	return execute[*TaskResponse](ctx, t.executor, post(segments...).withBody(body), TypeTask)
}

// Convert creates a task converting one input file to OutputFormat.
func (t *Tasks) Convert(ctx context.Context, req ConvertRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentConvert)
}

func (t *Tasks) Optimize(ctx context.Context, req OptimizeRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentOptimize)
}

// Capture renders a website into a PDF or image.
func (t *Tasks) Capture(ctx context.Context, req CaptureWebsiteRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentCaptureWebsite)
}

func (t *Tasks) Archive(ctx context.Context, req ArchiveRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentArchive)
}

func (t *Tasks) Command(ctx context.Context, req CommandRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentCommand)
}

func (t *Tasks) Thumbnail(ctx context.Context, req ThumbnailRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentThumbnail)
}

func (t *Tasks) Metadata(ctx context.Context, req MetadataRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentMetadata)
}

func (t *Tasks) WriteMetadata(ctx context.Context, req WriteMetadataRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentMetadata, SegmentWrite)
}

func (t *Tasks) Merge(ctx context.Context, req MergeRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentMerge)
}

func (t *Tasks) Watermark(ctx context.Context, req WatermarkRequest) (*Result[*TaskResponse], error) {
	return t.create(ctx, req, SegmentWatermark)
}

// ConvertFormats lists supported conversions with their engines and options.
func (t *Tasks) ConvertFormats(ctx context.Context, opts OperationOptions) (*Result[*Page[OperationResponse]], error) {
	return execute[*Page[OperationResponse]](ctx, t.executor, get(SegmentConvert, SegmentFormats).withQuery(opts.values()), TypeOperationPage)
}

// Operations lists every operation the API offers.
func (t *Tasks) Operations(ctx context.Context, opts OperationOptions) (*Result[*Page[OperationResponse]], error) {
	return execute[*Page[OperationResponse]](ctx, t.executor, get(SegmentOperations).withQuery(opts.values()), TypeOperationPage)
}

func (t *Tasks) Show(ctx context.Context, taskID string, includes ...Include) (*Result[*TaskResponse], error) {
	if taskID == "" {
		return nil, ErrEmptyID
	}
	q := url.Values{}
	addIncludes(q, includes)
	return execute[*TaskResponse](ctx, t.executor, get(SegmentTasks, taskID).withQuery(q), TypeTask)
}

// Wait blocks server-side until the task finished or failed.
func (t *Tasks) Wait(ctx context.Context, taskID string) (*Result[*TaskResponse], error) {
	if taskID == "" {
		return nil, ErrEmptyID
	}
	return execute[*TaskResponse](ctx, t.executor, get(SegmentTasks, taskID, SegmentWait), TypeTask)
}

func (t *Tasks) List(ctx context.Context, opts ListOptions) (*Result[*Page[TaskResponse]], error) {
	return execute[*Page[TaskResponse]](ctx, t.executor, get(SegmentTasks).withQuery(opts.values()), TypeTaskPage)
}

// Cancel stops a waiting or processing task.
func (t *Tasks) Cancel(ctx context.Context, taskID string) (*Result[*TaskResponse], error) {
	if taskID == "" {
		return nil, ErrEmptyID
	}
	return execute[*TaskResponse](ctx, t.executor, post(SegmentTasks, taskID, SegmentCancel), TypeTask)
}

// Retry creates a new task with the same payload as taskID.
func (t *Tasks) Retry(ctx context.Context, taskID string) (*Result[*TaskResponse], error) {
	if taskID == "" {
		return nil, ErrEmptyID
	}
	return execute[*TaskResponse](ctx, t.executor, post(SegmentTasks, taskID, SegmentRetry), TypeTask)
}

func (t *Tasks) Delete(ctx context.Context, taskID string) (*Result[Void], error) {
	if taskID == "" {
		return nil, ErrEmptyID
	}
	return execute[Void](ctx, t.executor, del(SegmentTasks, taskID), TypeVoid)
}
