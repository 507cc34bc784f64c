package docsdk

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

const (
	transientFetchRetryBudget = 3
	defaultPollInterval       = 2 * time.Second
)

// withProcessingTimeout wraps the context with the provided timeout if it lacks a deadline.
func withProcessingTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	if timeout <= 0 {
		timeout = ProcessingTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

// waitWithPolling repeatedly fetches a resource until it reaches a terminal
// state, a non-transient failure happens or the context ends.
func waitWithPolling[T any](ctx context.Context, id string, pollInterval time.Duration, operation string,
	timeout time.Duration,
	fetch func(context.Context, string) (*Result[T], error),
	terminal func(T) bool,
) (*Result[T], error) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	ctx, cancel := withProcessingTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	retriesLeft := transientFetchRetryBudget

	for {
		result, err := fetch(ctx, id)
		if err == nil && !result.IsSuccess() {
			err = errStatus(fmt.Sprintf("poll %s %s", operation, id), result.Err())
		}
		if err != nil {
			if retriesLeft > 0 && isTransientError(err) {
				retriesLeft--
				if err := waitForNextPoll(ctx, ticker, operation); err != nil {
					return nil, err
				}
				continue
			}
			return nil, err
		}

		retriesLeft = transientFetchRetryBudget

		if terminal(result.Body()) {
			return result, nil
		}

		if err := waitForNextPoll(ctx, ticker, operation); err != nil {
			return nil, err
		}
	}
}

// waitForNextPoll blocks until the next ticker pulse or context cancellation.
func waitForNextPoll(ctx context.Context, ticker *time.Ticker, operation string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s cancelled: %w", operation, ctx.Err())
	case <-ticker.C:
		return nil
	}
}

// isTransientError reports whether an error is temporary and merits a retry.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	type temporary interface {
		Temporary() bool
	}

	var tempErr temporary
	return errors.As(err, &tempErr) && tempErr.Temporary()
}

// Poll shows the job every interval until it finished or failed. Unlike Wait
// it keeps no request open on the server.
func (j *Jobs) Poll(ctx context.Context, jobID string, interval time.Duration) (*Result[*JobResponse], error) {
	if jobID == "" {
		return nil, ErrEmptyID
	}
	return waitWithPolling(ctx, jobID, interval, "job", j.timeout, j.Show, func(job *JobResponse) bool {
		return job != nil && (job.Status == StatusFinished || job.Status == StatusError)
	})
}

// Poll shows the task every interval until it finished or failed.
func (t *Tasks) Poll(ctx context.Context, taskID string, interval time.Duration) (*Result[*TaskResponse], error) {
	if taskID == "" {
		return nil, ErrEmptyID
	}
	show := func(ctx context.Context, id string) (*Result[*TaskResponse], error) {
		return t.Show(ctx, id)
	}
	return waitWithPolling(ctx, taskID, interval, "task", t.timeout, show, func(task *TaskResponse) bool {
		return task != nil && (task.Status == StatusFinished || task.Status == StatusError)
	})
}
