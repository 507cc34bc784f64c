package docsdk

import (
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Filter names a list filter, sent as filter[<name>]=value.
type Filter string

const (
	FilterJobID         Filter = "job_id"
	FilterStatus        Filter = "status"
	FilterOperation     Filter = "operation"
	FilterTag           Filter = "tag"
	FilterInputFormat   Filter = "input_format"
	FilterOutputFormat  Filter = "output_format"
	FilterEngine        Filter = "engine"
	FilterEngineVersion Filter = "engine_version"
	FilterURL           Filter = "url"
)

// Include names an optional relation the API can embed in a response.
type Include string

const (
	IncludePayload        Include = "payload"
	IncludeRetries        Include = "retries"
	IncludeDependsOnTasks Include = "depends_on_tasks"
	IncludeTasks          Include = "tasks"
	IncludeOptions        Include = "options"
	IncludeEngineVersions Include = "engine_versions"
)

type Filters map[Filter]string

type Pagination struct {
	PerPage int
	Page    int
}

// ListOptions narrows a list call. The zero value lists the first page
// without filters.
type ListOptions struct {
	Filters    Filters
	Includes   []Include
	Pagination *Pagination
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	addFilters(q, o.Filters)
	addIncludes(q, o.Includes)
	if o.Pagination != nil {
		if o.Pagination.PerPage > 0 {
			q.Set(ParamPerPage, strconv.Itoa(o.Pagination.PerPage))
		}
		if o.Pagination.Page > 0 {
			q.Set(ParamPage, strconv.Itoa(o.Pagination.Page))
		}
	}
	return q
}

// OperationOptions narrows the operations and convert formats listings.
type OperationOptions struct {
	Filters  Filters
	Includes []Include
	// Alternative includes alternative engines when set.
	Alternative *bool
}

func (o OperationOptions) values() url.Values {
	q := url.Values{}
	addFilters(q, o.Filters)
	addIncludes(q, o.Includes)
	if o.Alternative != nil {
		q.Set(ParamAlternative, strconv.FormatBool(*o.Alternative))
	}
	return q
}

func addFilters(q url.Values, filters Filters) {
	names := make([]string, 0, len(filters))
	for f := range filters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	for _, name := range names {
		q.Set("filter["+name+"]", filters[Filter(name)])
	}
}

func addIncludes(q url.Values, includes []Include) {
	if len(includes) == 0 {
		return
	}
	parts := make([]string, len(includes))
	for i, inc := range includes {
		parts[i] = string(inc)
	}
	q.Set(ParamInclude, strings.Join(parts, ","))
}

// request is a transport-neutral description of one API call.
type request struct {
	method   string
	segments []string
	// rawURL targets an absolute URL outside the API (uploads, downloads).
	rawURL string
	query  url.Values
	body   any
	form   map[string]string
	file   *fileUpload
}

type fileUpload struct {
	param  string
	name   string
	reader io.Reader
}

func newRequest(method string, segments ...string) *request {
	return &request{method: method, segments: segments}
}

func get(segments ...string) *request { return newRequest(http.MethodGet, segments...) }

func post(segments ...string) *request { return newRequest(http.MethodPost, segments...) }

func del(segments ...string) *request { return newRequest(http.MethodDelete, segments...) }

func (r *request) withQuery(q url.Values) *request {
	r.query = q
	return r
}

func (r *request) withBody(body any) *request {
	r.body = body
	return r
}

// path renders the API path, e.g. /v2/jobs/abc.
func (r *request) path() string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(APIVersion)
	for _, seg := range r.segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

// target is what the transport should be pointed at.
func (r *request) target() string {
	if r.rawURL != "" {
		return r.rawURL
	}
	return r.path()
}
