package gctx

import (
	"context"
	"io"
)

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

// NewReader returns a reader that fails with the context cause once ctx is done.
// A Read already blocked in r is not interrupted.
func NewReader(ctx context.Context, r io.Reader) io.Reader {
	return &contextReader{ctx: ctx, r: r}
}

func (r *contextReader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, context.Cause(r.ctx)
	default:
		return r.r.Read(p)
	}
}
