package docsdk

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Client is the blocking DocSDK client. It is safe for concurrent use.
type Client struct {
	settings        SettingsProvider
	restyClient     *resty.Client
	transferClient  *resty.Client
	uploadClient    *resty.Client
	logger          zerolog.Logger
	timeout         time.Duration
	transferTimeout time.Duration
	workers         int

	executor *requestExecutor

	jobs     *Jobs
	tasks    *Tasks
	imports  *Imports
	exports  *Exports
	files    *Files
	webhooks *Webhooks
	users    *Users
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithProcessingTimeout bounds uploads, downloads and client-side polling.
func WithProcessingTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.transferTimeout = timeout
		}
	}
}

// WithRestyClient allows callers to provide a preconfigured API client.
// Base URL and authentication are still set from the settings.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *Client) {
		if restyClient != nil {
			c.restyClient = restyClient
		}
	}
}

// WithTransferClient overrides the client used for uploads to form URLs and
// file downloads. It never carries the API key. Retried uploads rewind their
// reader, so the client's retry settings only apply to io.Seeker uploads.
func WithTransferClient(transfer *resty.Client) Option {
	return func(c *Client) {
		if transfer != nil {
			c.transferClient = transfer
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithWorkers caps the number of concurrent calls an AsyncClient runs.
func WithWorkers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

func NewClient(settings SettingsProvider, opts ...Option) (*Client, error) {
	if settings == nil || settings.APIKey() == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		settings:        settings,
		logger:          zerolog.Nop(),
		timeout:         DefaultTimeout,
		transferTimeout: ProcessingTimeout,
		workers:         DefaultWorkers,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.restyClient == nil {
		c.restyClient = newDefaultAPIClient()
	}
	c.restyClient.
		SetBaseURL(settings.APIURL()).
		SetTimeout(c.timeout).
		SetAuthToken(settings.APIKey()).
		SetHeader(HeaderUserAgent, ValueUserAgent)

	if c.transferClient == nil {
		c.transferClient = newTransferClient(c.transferTimeout)
	}
	c.transferClient.SetRetryResetReaders(true)
	c.uploadClient = newUploadClient(c.transferClient)

	for _, rc := range []*resty.Client{c.restyClient, c.transferClient, c.uploadClient} {
		rc.SetLogger(restyLogger{logger: c.logger})
	}

	c.executor = &requestExecutor{
		api:       c.restyClient,
		transfer:  c.transferClient,
		upload:    c.uploadClient,
		extractor: NewResultExtractor(),
		logger:    c.logger,
	}

	c.tasks = &Tasks{executor: c.executor, timeout: c.transferTimeout}
	c.jobs = &Jobs{executor: c.executor, timeout: c.transferTimeout}
	c.imports = &Imports{executor: c.executor, tasks: c.tasks}
	c.exports = &Exports{executor: c.executor}
	c.files = &Files{executor: c.executor}
	c.webhooks = &Webhooks{executor: c.executor, secret: settings.WebhookSigningSecret()}
	c.users = &Users{executor: c.executor}

	return c, nil
}

// Name returns the service name.
func (c *Client) Name() string {
	return ServiceName
}

// Version returns the API version.
func (c *Client) Version() string {
	return APIVersion
}

func (c *Client) Jobs() *Jobs         { return c.jobs }
func (c *Client) Tasks() *Tasks       { return c.tasks }
func (c *Client) Import() *Imports    { return c.imports }
func (c *Client) Export() *Exports    { return c.exports }
func (c *Client) Files() *Files       { return c.files }
func (c *Client) Webhooks() *Webhooks { return c.webhooks }
func (c *Client) Users() *Users       { return c.users }

func newDefaultAPIClient() *resty.Client {
	return resty.New().
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)
}

func newTransferClient(timeout time.Duration) *resty.Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader(HeaderUserAgent, ValueUserAgent).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return client
}

// newUploadClient shares the transfer client's HTTP client but never retries:
// a reader that cannot be rewound is consumed by the first attempt.
func newUploadClient(transfer *resty.Client) *resty.Client {
	return resty.NewWithClient(transfer.GetClient()).
		SetHeader(HeaderUserAgent, ValueUserAgent).
		SetRetryCount(0)
}

// restyLogger sends resty's own messages, such as retry warnings, to the
// client logger.
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error().Str("component", "resty").Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Str("component", "resty").Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Str("component", "resty").Msgf(format, v...)
}
