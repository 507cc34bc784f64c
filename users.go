package docsdk

import "context"

type Users struct {
	executor *requestExecutor
}

// Me returns the account the API key belongs to.
func (u *Users) Me(ctx context.Context) (*Result[*UserResponse], error) {
	return execute[*UserResponse](ctx, u.executor, get(SegmentUsers, SegmentMe), TypeUser)
}
