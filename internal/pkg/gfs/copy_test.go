package gfs_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/docker/go-units"
	"github.com/mxk/go-flowrate/flowrate"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"throughput/internal/pkg/gfs"
)

func TestCopy(t *testing.T) {
	var src bytes.Buffer
	lo.Must(io.CopyN(&src, rand.Reader, units.MiB))
	expected := bytes.Clone(src.Bytes())

	var dest bytes.Buffer
	m := flowrate.New(time.Second, time.Second)

	n, err := gfs.Copy(context.Background(), onlyWriter{&dest}, onlyReader{&src}, make([]byte, 32*units.KiB), m)
	require.NoError(t, err)
	require.EqualValues(t, units.MiB, n)
	require.Equal(t, expected, dest.Bytes())
	require.EqualValues(t, units.MiB, m.Done())
}

func TestCopy_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := gfs.Copy(ctx, io.Discard, onlyReader{bytes.NewReader([]byte("hello"))}, make([]byte, 8), flowrate.New(0, 0))
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, n)
}

// hide ReaderFrom and WriterTo so io.CopyBuffer goes through the buffer.
type onlyReader struct{ io.Reader }

type onlyWriter struct{ io.Writer }
