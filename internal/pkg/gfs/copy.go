package gfs

import (
	"context"
	"io"

	"github.com/mxk/go-flowrate/flowrate"

	"throughput/internal/pkg/gctx"
)

type monitoredReader struct {
	m *flowrate.Monitor
	r io.Reader
}

func (r monitoredReader) Read(p []byte) (int, error) {
	return r.m.IO(r.r.Read(p))
}

// Copy copies src to dest until EOF or until ctx is done, recording every read in monitor.
// buf must not be empty.
func Copy(ctx context.Context, dest io.Writer, src io.Reader, buf []byte, monitor *flowrate.Monitor) (int64, error) {
	return io.CopyBuffer(dest, gctx.NewReader(ctx, monitoredReader{m: monitor, r: src}), buf)
}
