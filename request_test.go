package docsdk

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListOptionsValues(t *testing.T) {
	opts := ListOptions{
		Filters: Filters{
			FilterStatus: "finished",
			FilterTag:    "invoices",
		},
		Includes:   []Include{IncludeTasks, IncludePayload},
		Pagination: &Pagination{PerPage: 25, Page: 2},
	}

	assert.Equal(t, url.Values{
		"filter[status]": {"finished"},
		"filter[tag]":    {"invoices"},
		"include":        {"tasks,payload"},
		"per_page":       {"25"},
		"page":           {"2"},
	}, opts.values())
}

func TestListOptionsZeroValue(t *testing.T) {
	assert.Empty(t, ListOptions{}.values())
	assert.Empty(t, ListOptions{Pagination: &Pagination{}}.values())
}

func TestOperationOptionsValues(t *testing.T) {
	alt := false
	opts := OperationOptions{
		Filters:     Filters{FilterInputFormat: "docx", FilterOutputFormat: "pdf"},
		Includes:    []Include{IncludeOptions},
		Alternative: &alt,
	}

	assert.Equal(t, url.Values{
		"filter[input_format]":  {"docx"},
		"filter[output_format]": {"pdf"},
		"include":               {"options"},
		"alternative":           {"false"},
	}, opts.values())

	assert.NotContains(t, OperationOptions{}.values(), "alternative")
}

func TestRequestPath(t *testing.T) {
	assert.Equal(t, "/v2/jobs", get(SegmentJobs).path())
	assert.Equal(t, "/v2/tasks/abc/wait", get(SegmentTasks, "abc", SegmentWait).path())
	assert.Equal(t, "/v2/import/azure/blob", post(SegmentImport, SegmentAzure, SegmentBlob).path())
	assert.Equal(t, "/v2/jobs/a%2Fb", get(SegmentJobs, "a/b").path())
}

func TestRequestTarget(t *testing.T) {
	req := &request{method: "GET", rawURL: "https://storage.example.com/file.pdf"}
	assert.Equal(t, "https://storage.example.com/file.pdf", req.target())
	assert.Equal(t, "/v2/users/me", get(SegmentUsers, SegmentMe).target())
}
