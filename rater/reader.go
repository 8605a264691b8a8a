package rater

import (
	"errors"
	"io"
)

var _ io.ReadCloser = (*Reader)(nil)

// Reader reports the throughput of reads from an underlying io.Reader.
type Reader struct {
	*Rater
	r io.Reader
}

func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	rt, err := newRater(opts)
	if err != nil {
		return nil, err
	}

	return &Reader{Rater: rt, r: r}, nil
}

// Read passes through to the underlying reader. Bytes of failed reads are not
// counted, a read ending with io.EOF is not a failure.
func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.r.Read(p) // underlying io.Reader read

	if err != nil && !errors.Is(err, io.EOF) {
		return n, err
	}

	r.Add(n)

	return n, err
}

// Close closes the underlying reader if it is an io.Closer.
func (r *Reader) Close() error {
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
