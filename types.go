package docsdk

import (
	"encoding/json"
	"time"
)

// Status enumerates job and task states.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusProcessing Status = "processing"
	StatusFinished   Status = "finished"
	StatusError      Status = "error"
)

// Operation enumerates the operation names reported on tasks.
type Operation string

const (
	OperationImportURL                Operation = "import/url"
	OperationImportUpload             Operation = "import/upload"
	OperationImportS3                 Operation = "import/s3"
	OperationImportAzureBlob          Operation = "import/azure/blob"
	OperationImportGoogleCloudStorage Operation = "import/google-cloud-storage"
	OperationImportOpenStack          Operation = "import/openstack"
	OperationImportSFTP               Operation = "import/sftp"
	OperationConvert                  Operation = "convert"
	OperationOptimize                 Operation = "optimize"
	OperationCaptureWebsite           Operation = "capture-website"
	OperationArchive                  Operation = "archive"
	OperationCommand                  Operation = "command"
	OperationThumbnail                Operation = "thumbnail"
	OperationMetadata                 Operation = "metadata"
	OperationMetadataWrite            Operation = "metadata/write"
	OperationMerge                    Operation = "merge"
	OperationWatermark                Operation = "watermark"
	OperationExportURL                Operation = "export/url"
	OperationExportS3                 Operation = "export/s3"
	OperationExportAzureBlob          Operation = "export/azure/blob"
	OperationExportGoogleCloudStorage Operation = "export/google-cloud-storage"
	OperationExportOpenStack          Operation = "export/openstack"
	OperationExportSFTP               Operation = "export/sftp"
)

// Event enumerates webhook events.
type Event string

const (
	EventJobCreated  Event = "job.created"
	EventJobFinished Event = "job.finished"
	EventJobFailed   Event = "job.failed"
)

// TaskRequest is implemented by every request that can be part of a job.
type TaskRequest interface {
	Operation() Operation
}

// jobTask adds the "operation" key a job payload needs next to the task fields.
type jobTask struct {
	TaskRequest
}

func (t jobTask) MarshalJSON() ([]byte, error) {
	if t.TaskRequest == nil {
		return nil, ErrNilRequest
	}
	raw, err := json.Marshal(t.TaskRequest)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	op, err := json.Marshal(t.TaskRequest.Operation())
	if err != nil {
		return nil, err
	}
	fields["operation"] = op
	return json.Marshal(fields)
}

// RawTask is a job task given as a plain field map, for example one read from
// a file. The "operation" key in Fields is replaced by Op.
type RawTask struct {
	Op     Operation
	Fields map[string]any
}

func (t RawTask) Operation() Operation { return t.Op }

func (t RawTask) MarshalJSON() ([]byte, error) {
	if t.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t.Fields)
}

// JobRequest is the body of a job creation call.
type JobRequest struct {
	Tasks map[string]jobTask `json:"tasks"`
	Tag   string             `json:"tag,omitempty"`
}

// ConvertRequest converts one input file from InputFormat to OutputFormat.
type ConvertRequest struct {
	Input         any            `json:"input"`                    // task id, task name or list of them
	InputFormat   string         `json:"input_format,omitempty"`
	OutputFormat  string         `json:"output_format"`
	Engine        string         `json:"engine,omitempty"`
	EngineVersion string         `json:"engine_version,omitempty"`
	Filename      string         `json:"filename,omitempty"`
	Timeout       int            `json:"timeout,omitempty"`
	Options       map[string]any `json:"-"`
}

func (ConvertRequest) Operation() Operation { return OperationConvert }

func (r ConvertRequest) MarshalJSON() ([]byte, error) {
	type plain ConvertRequest
	return withOptions(plain(r), r.Options)
}

type OptimizeRequest struct {
	Input         any            `json:"input"`
	InputFormat   string         `json:"input_format,omitempty"`
	Engine        string         `json:"engine,omitempty"`
	EngineVersion string         `json:"engine_version,omitempty"`
	Profile       string         `json:"profile,omitempty"`
	Filename      string         `json:"filename,omitempty"`
	Timeout       int            `json:"timeout,omitempty"`
	Options       map[string]any `json:"-"`
}

func (OptimizeRequest) Operation() Operation { return OperationOptimize }

func (r OptimizeRequest) MarshalJSON() ([]byte, error) {
	type plain OptimizeRequest
	return withOptions(plain(r), r.Options)
}

type CaptureWebsiteRequest struct {
	URL             string            `json:"url"`
	OutputFormat    string            `json:"output_format"`
	Engine          string            `json:"engine,omitempty"`
	EngineVersion   string            `json:"engine_version,omitempty"`
	Pages           string            `json:"pages,omitempty"`
	Zoom            float64           `json:"zoom,omitempty"`
	PageWidth       float64           `json:"page_width,omitempty"`
	PageHeight      float64           `json:"page_height,omitempty"`
	PrintBackground *bool             `json:"print_background,omitempty"`
	WaitUntil       string            `json:"wait_until,omitempty"`
	WaitTime        int               `json:"wait_time,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	Filename        string            `json:"filename,omitempty"`
	Timeout         int               `json:"timeout,omitempty"`
}

func (CaptureWebsiteRequest) Operation() Operation { return OperationCaptureWebsite }

type ArchiveRequest struct {
	Input         any    `json:"input"`
	OutputFormat  string `json:"output_format"`
	Engine        string `json:"engine,omitempty"`
	EngineVersion string `json:"engine_version,omitempty"`
	Filename      string `json:"filename,omitempty"`
	Timeout       int    `json:"timeout,omitempty"`
}

func (ArchiveRequest) Operation() Operation { return OperationArchive }

// CommandEngine names the engine a command task runs under.
type CommandEngine string

const (
	EngineFFmpeg         CommandEngine = "ffmpeg"
	EngineImageMagick    CommandEngine = "imagemagick"
	EngineGraphicsMagick CommandEngine = "graphicsmagick"
)

type CommandRequest struct {
	Input         any           `json:"input"`
	Engine        CommandEngine `json:"engine"`
	EngineVersion string        `json:"engine_version,omitempty"`
	Command       string        `json:"command"`
	Arguments     string        `json:"arguments"`
	CaptureOutput bool          `json:"capture_output,omitempty"`
	Timeout       int           `json:"timeout,omitempty"`
}

func (CommandRequest) Operation() Operation { return OperationCommand }

type ThumbnailRequest struct {
	Input         any    `json:"input"`
	InputFormat   string `json:"input_format,omitempty"`
	OutputFormat  string `json:"output_format"`
	Engine        string `json:"engine,omitempty"`
	EngineVersion string `json:"engine_version,omitempty"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
	Fit           string `json:"fit,omitempty"`
	Count         int    `json:"count,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
	Filename      string `json:"filename,omitempty"`
	Timeout       int    `json:"timeout,omitempty"`
}

func (ThumbnailRequest) Operation() Operation { return OperationThumbnail }

type MetadataRequest struct {
	Input         any    `json:"input"`
	InputFormat   string `json:"input_format,omitempty"`
	Engine        string `json:"engine,omitempty"`
	EngineVersion string `json:"engine_version,omitempty"`
	Timeout       int    `json:"timeout,omitempty"`
}

func (MetadataRequest) Operation() Operation { return OperationMetadata }

type WriteMetadataRequest struct {
	Input         any               `json:"input"`
	InputFormat   string            `json:"input_format,omitempty"`
	Engine        string            `json:"engine,omitempty"`
	EngineVersion string            `json:"engine_version,omitempty"`
	Metadata      map[string]string `json:"metadata"`
	Filename      string            `json:"filename,omitempty"`
	Timeout       int               `json:"timeout,omitempty"`
}

func (WriteMetadataRequest) Operation() Operation { return OperationMetadataWrite }

type MergeRequest struct {
	Input         []string `json:"input"`
	OutputFormat  string   `json:"output_format"`
	Engine        string   `json:"engine,omitempty"`
	EngineVersion string   `json:"engine_version,omitempty"`
	Filename      string   `json:"filename,omitempty"`
	Timeout       int      `json:"timeout,omitempty"`
}

func (MergeRequest) Operation() Operation { return OperationMerge }

type WatermarkRequest struct {
	Input         any     `json:"input"`
	InputFormat   string  `json:"input_format,omitempty"`
	Pages         string  `json:"pages,omitempty"`
	Layer         string  `json:"layer,omitempty"`
	Text          string  `json:"text,omitempty"`
	FontSize      int     `json:"font_size,omitempty"`
	FontColor     string  `json:"font_color,omitempty"`
	Image         string  `json:"image,omitempty"`
	Opacity       float64 `json:"opacity,omitempty"`
	Rotation      int     `json:"rotation,omitempty"`
	Position      string  `json:"position_vertical,omitempty"`
	Engine        string  `json:"engine,omitempty"`
	EngineVersion string  `json:"engine_version,omitempty"`
	Filename      string  `json:"filename,omitempty"`
	Timeout       int     `json:"timeout,omitempty"`
}

func (WatermarkRequest) Operation() Operation { return OperationWatermark }

// Import requests.

type URLImportRequest struct {
	URL      string            `json:"url"`
	Filename string            `json:"filename,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

func (URLImportRequest) Operation() Operation { return OperationImportURL }

type UploadImportRequest struct {
	RedirectURL string `json:"redirect,omitempty"`
}

func (UploadImportRequest) Operation() Operation { return OperationImportUpload }

type S3ImportRequest struct {
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint,omitempty"`
	Key             string `json:"key,omitempty"`
	KeyPrefix       string `json:"key_prefix,omitempty"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
	Filename        string `json:"filename,omitempty"`
}

func (S3ImportRequest) Operation() Operation { return OperationImportS3 }

type AzureBlobImportRequest struct {
	StorageAccount   string `json:"storage_account"`
	StorageAccessKey string `json:"storage_access_key,omitempty"`
	SASToken         string `json:"sas_token,omitempty"`
	Container        string `json:"container"`
	Blob             string `json:"blob,omitempty"`
	BlobPrefix       string `json:"blob_prefix,omitempty"`
	Filename         string `json:"filename,omitempty"`
}

func (AzureBlobImportRequest) Operation() Operation { return OperationImportAzureBlob }

type GoogleCloudStorageImportRequest struct {
	ProjectID   string `json:"project_id"`
	Bucket      string `json:"bucket"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	File        string `json:"file,omitempty"`
	FilePrefix  string `json:"file_prefix,omitempty"`
	Filename    string `json:"filename,omitempty"`
}

func (GoogleCloudStorageImportRequest) Operation() Operation {
	return OperationImportGoogleCloudStorage
}

type OpenStackImportRequest struct {
	AuthURL    string `json:"auth_url"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Region     string `json:"region"`
	Container  string `json:"container"`
	File       string `json:"file,omitempty"`
	FilePrefix string `json:"file_prefix,omitempty"`
	Filename   string `json:"filename,omitempty"`
}

func (OpenStackImportRequest) Operation() Operation { return OperationImportOpenStack }

type SFTPImportRequest struct {
	Host       string `json:"host"`
	Port       int    `json:"port,omitempty"`
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"`
	PrivateKey string `json:"private_key,omitempty"`
	File       string `json:"file,omitempty"`
	Path       string `json:"path,omitempty"`
	Filename   string `json:"filename,omitempty"`
}

func (SFTPImportRequest) Operation() Operation { return OperationImportSFTP }

// Export requests.

type URLExportRequest struct {
	Input           any  `json:"input"`
	Inline          bool `json:"inline,omitempty"`
	ArchiveMultiple bool `json:"archive_multiple_files,omitempty"`
}

func (URLExportRequest) Operation() Operation { return OperationExportURL }

type S3ExportRequest struct {
	Input           any    `json:"input"`
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint,omitempty"`
	Key             string `json:"key,omitempty"`
	KeyPrefix       string `json:"key_prefix,omitempty"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
	ACL             string `json:"acl,omitempty"`
	CacheControl    string `json:"cache_control,omitempty"`
	ContentType     string `json:"content_type,omitempty"`
}

func (S3ExportRequest) Operation() Operation { return OperationExportS3 }

type AzureBlobExportRequest struct {
	Input            any    `json:"input"`
	StorageAccount   string `json:"storage_account"`
	StorageAccessKey string `json:"storage_access_key,omitempty"`
	SASToken         string `json:"sas_token,omitempty"`
	Container        string `json:"container"`
	Blob             string `json:"blob,omitempty"`
	BlobPrefix       string `json:"blob_prefix,omitempty"`
}

func (AzureBlobExportRequest) Operation() Operation { return OperationExportAzureBlob }

type GoogleCloudStorageExportRequest struct {
	Input       any    `json:"input"`
	ProjectID   string `json:"project_id"`
	Bucket      string `json:"bucket"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	File        string `json:"file,omitempty"`
	FilePrefix  string `json:"file_prefix,omitempty"`
}

func (GoogleCloudStorageExportRequest) Operation() Operation {
	return OperationExportGoogleCloudStorage
}

type OpenStackExportRequest struct {
	Input      any    `json:"input"`
	AuthURL    string `json:"auth_url"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Region     string `json:"region"`
	Container  string `json:"container"`
	File       string `json:"file,omitempty"`
	FilePrefix string `json:"file_prefix,omitempty"`
}

func (OpenStackExportRequest) Operation() Operation { return OperationExportOpenStack }

type SFTPExportRequest struct {
	Input      any    `json:"input"`
	Host       string `json:"host"`
	Port       int    `json:"port,omitempty"`
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"`
	PrivateKey string `json:"private_key,omitempty"`
	File       string `json:"file,omitempty"`
	Path       string `json:"path,omitempty"`
}

func (SFTPExportRequest) Operation() Operation { return OperationExportSFTP }

// WebhookRequest registers a webhook endpoint.
type WebhookRequest struct {
	URL    string  `json:"url"`
	Events []Event `json:"events,omitempty"`
}

// Responses.

// Page is a paginated collection.
type Page[T any] struct {
	Data  []T       `json:"data"`
	Links PageLinks `json:"links"`
	Meta  PageMeta  `json:"meta"`
}

type PageLinks struct {
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

type PageMeta struct {
	CurrentPage int    `json:"current_page"`
	From        int    `json:"from"`
	Path        string `json:"path,omitempty"`
	PerPage     int    `json:"per_page"`
	To          int    `json:"to"`
}

type TaskResponse struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id,omitempty"`
	Name           string            `json:"name,omitempty"`
	Operation      Operation         `json:"operation"`
	Status         Status            `json:"status"`
	Message        string            `json:"message,omitempty"`
	Code           string            `json:"code,omitempty"`
	Credits        int               `json:"credits,omitempty"`
	CreatedAt      *time.Time        `json:"created_at,omitempty"`
	StartedAt      *time.Time        `json:"started_at,omitempty"`
	EndedAt        *time.Time        `json:"ended_at,omitempty"`
	DependsOnTasks map[string]any    `json:"depends_on_tasks,omitempty"`
	RetryOfTaskID  string            `json:"retry_of_task_id,omitempty"`
	CopyOfTaskID   string            `json:"copy_of_task_id,omitempty"`
	Engine         string            `json:"engine,omitempty"`
	EngineVersion  string            `json:"engine_version,omitempty"`
	Payload        map[string]any    `json:"payload,omitempty"`
	Result         *TaskResult       `json:"result,omitempty"`
	Links          map[string]string `json:"links,omitempty"`
}

type TaskResult struct {
	Files    []ResultFile   `json:"files,omitempty"`
	Form     *UploadForm    `json:"form,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Output   string         `json:"output,omitempty"`
}

type ResultFile struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size,omitempty"`
	URL      string `json:"url,omitempty"`
}

// UploadForm is returned by an import/upload task: POST the file with these
// parameters to URL.
type UploadForm struct {
	URL        string            `json:"url"`
	Parameters map[string]string `json:"parameters"`
}

type JobResponse struct {
	ID        string            `json:"id"`
	Tag       string            `json:"tag,omitempty"`
	Status    Status            `json:"status"`
	CreatedAt *time.Time        `json:"created_at,omitempty"`
	StartedAt *time.Time        `json:"started_at,omitempty"`
	EndedAt   *time.Time        `json:"ended_at,omitempty"`
	Tasks     []TaskResponse    `json:"tasks,omitempty"`
	Links     map[string]string `json:"links,omitempty"`
}

// ExportURLs collects the file URLs of all finished export/url tasks.
func (j *JobResponse) ExportURLs() []ResultFile {
	var files []ResultFile
	for _, t := range j.Tasks {
		if t.Operation != OperationExportURL || t.Status != StatusFinished || t.Result == nil {
			continue
		}
		files = append(files, t.Result.Files...)
	}
	return files
}

type OperationResponse struct {
	Operation     Operation         `json:"operation"`
	InputFormat   string            `json:"input_format,omitempty"`
	OutputFormat  string            `json:"output_format,omitempty"`
	Engine        string            `json:"engine,omitempty"`
	EngineVersion string            `json:"engine_version,omitempty"`
	Credits       int               `json:"credits,omitempty"`
	Deprecated    bool              `json:"deprecated,omitempty"`
	Experimental  bool              `json:"experimental,omitempty"`
	Meta          map[string]any    `json:"meta,omitempty"`
	Options       []OperationOption `json:"options,omitempty"`
}

type OperationOption struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Default       any    `json:"default,omitempty"`
	Possibilities []any  `json:"possible_values,omitempty"`
}

type UserResponse struct {
	ID        int64             `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Credits   int               `json:"credits"`
	CreatedAt *time.Time        `json:"created_at,omitempty"`
	Links     map[string]string `json:"links,omitempty"`
}

type WebhookResponse struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Events        []Event           `json:"events"`
	SigningSecret string            `json:"signing_secret,omitempty"`
	CreatedAt     *time.Time        `json:"created_at,omitempty"`
	Links         map[string]string `json:"links,omitempty"`
}

// WebhookPayload is the body the API posts to a webhook endpoint.
type WebhookPayload struct {
	Event Event       `json:"event"`
	Job   JobResponse `json:"job"`
}

func withOptions(v any, options map[string]any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil || len(options) == 0 {
		return raw, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for k, val := range options {
		if _, exists := fields[k]; !exists {
			fields[k] = val
		}
	}
	return json.Marshal(fields)
}
