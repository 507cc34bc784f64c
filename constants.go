package docsdk

import "time"

const (
	ServiceName       = "docsdk"
	APIVersion        = "v2"
	SDKVersion        = "1.0.0"
	APIURLLive        = "https://api.docsdk.com"
	APIURLSandbox     = "https://api.sandbox.docsdk.com"
	DefaultTimeout    = 5 * time.Minute
	ProcessingTimeout = 30 * time.Minute
	DefaultWorkers    = 8

	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderSignature     = "DocSDK-Signature"
	ValueUserAgent      = "docsdk-go/" + SDKVersion
)

// Path segments, joined below the API version.
const (
	SegmentJobs           = "jobs"
	SegmentTasks          = "tasks"
	SegmentWait           = "wait"
	SegmentCancel         = "cancel"
	SegmentRetry          = "retry"
	SegmentOperations     = "operations"
	SegmentConvert        = "convert"
	SegmentFormats        = "formats"
	SegmentOptimize       = "optimize"
	SegmentCaptureWebsite = "capture-website"
	SegmentArchive        = "archive"
	SegmentCommand        = "command"
	SegmentThumbnail      = "thumbnail"
	SegmentMetadata       = "metadata"
	SegmentWrite          = "write"
	SegmentMerge          = "merge"
	SegmentWatermark      = "watermark"
	SegmentImport         = "import"
	SegmentExport         = "export"
	SegmentURL            = "url"
	SegmentUpload         = "upload"
	SegmentS3             = "s3"
	SegmentAzure          = "azure"
	SegmentBlob           = "blob"
	SegmentGoogleCloud    = "google-cloud-storage"
	SegmentOpenStack      = "openstack"
	SegmentSFTP           = "sftp"
	SegmentWebhooks       = "webhooks"
	SegmentUsers          = "users"
	SegmentMe             = "me"
)

// Query parameter names.
const (
	ParamInclude     = "include"
	ParamPerPage     = "per_page"
	ParamPage        = "page"
	ParamAlternative = "alternative"
)
