package docsdk

import (
	"context"
	"fmt"
	"time"
)

// Void is the body type of calls that only report a status.
type Void struct{}

// Jobs groups the /jobs endpoints.
type Jobs struct {
	executor *requestExecutor
	timeout  time.Duration
}

// Create starts a job made of named tasks. Tasks reference each other by
// name through their Input fields.
func (j *Jobs) Create(ctx context.Context, tasks map[string]TaskRequest, tag string) (*Result[*JobResponse], error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyTasks
	}

	body := JobRequest{Tasks: make(map[string]jobTask, len(tasks)), Tag: tag}
	for name, task := range tasks {
		if task == nil {
			return nil, fmt.Errorf("task %q: %w", name, ErrNilRequest)
		}
		body.Tasks[name] = jobTask{TaskRequest: task}
	}

	return execute[*JobResponse](ctx, j.executor, post(SegmentJobs).withBody(body), TypeJob)
}

func (j *Jobs) Show(ctx context.Context, jobID string) (*Result[*JobResponse], error) {
	if jobID == "" {
		return nil, ErrEmptyID
	}
	return execute[*JobResponse](ctx, j.executor, get(SegmentJobs, jobID), TypeJob)
}

// Wait blocks server-side until the job finished or failed.
func (j *Jobs) Wait(ctx context.Context, jobID string) (*Result[*JobResponse], error) {
	if jobID == "" {
		return nil, ErrEmptyID
	}
	return execute[*JobResponse](ctx, j.executor, get(SegmentJobs, jobID, SegmentWait), TypeJob)
}

func (j *Jobs) List(ctx context.Context, opts ListOptions) (*Result[*Page[JobResponse]], error) {
	return execute[*Page[JobResponse]](ctx, j.executor, get(SegmentJobs).withQuery(opts.values()), TypeJobPage)
}

func (j *Jobs) Delete(ctx context.Context, jobID string) (*Result[Void], error) {
	if jobID == "" {
		return nil, ErrEmptyID
	}
	return execute[Void](ctx, j.executor, del(SegmentJobs, jobID), TypeVoid)
}
