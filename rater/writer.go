package rater

import (
	"io"
)

var _ io.WriteCloser = (*Writer)(nil)

type flusher interface {
	Flush() error
}

// Writer reports the throughput of writes to an underlying io.Writer.
type Writer struct {
	*Rater
	w io.Writer
}

func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	rt, err := newRater(opts)
	if err != nil {
		return nil, err
	}

	return &Writer{Rater: rt, w: w}, nil
}

// Write passes through to the underlying writer.
// A write returning an error is not counted, even if it was partial.
func (w *Writer) Write(p []byte) (n int, err error) {
	n, err = w.w.Write(p)
	if err != nil {
		return n, err
	}

	w.Add(n)

	return n, nil
}

// Flush flushes the underlying writer if it has a Flush() error method, like *bufio.Writer.
func (w *Writer) Flush() error {
	if f, ok := w.w.(flusher); ok {
		return f.Flush()
	}

	return nil
}

func (w *Writer) Close() error {
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
