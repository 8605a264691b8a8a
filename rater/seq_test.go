package rater_test

import (
	"bytes"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"throughput/rater"
)

func TestBytes(t *testing.T) {
	t.Parallel()

	c := clock.NewMock()
	var out bytes.Buffer

	input := bytes.Repeat([]byte{0}, 3000)
	seq, err := rater.Bytes(slices.Values(input), rater.WithClock(c), rater.WithOutput(&out))
	require.NoError(t, err)

	var got []byte
	for b := range seq {
		got = append(got, b)
		if len(got)%1000 == 0 {
			c.Add(time.Second)
		}
	}

	require.Equal(t, input, got)
	// a byte is counted before the loop body moves the clock, so the first byte
	// after each step lands in the previous window. the last window is reported
	// by the check after the sequence ends.
	require.Equal(t, "1001.00 B/s\n1000.00 B/s\n999.00 B/s\n", out.String())
}

func TestSeq_ItemSize(t *testing.T) {
	t.Parallel()

	c := clock.NewMock()
	var out bytes.Buffer

	seq, err := rater.Seq(slices.Values([]uint32{1, 2, 3, 4}), rater.WithClock(c), rater.WithOutput(&out))
	require.NoError(t, err)

	var got []uint32
	for v := range seq {
		got = append(got, v)
	}
	c.Add(time.Second)

	require.Equal(t, []uint32{1, 2, 3, 4}, got)
	// nothing forces a report when the interval hasn't elapsed at the end
	require.Empty(t, out.String())
}

func TestSeqFunc(t *testing.T) {
	t.Parallel()

	c := clock.NewMock()
	var got []rater.Bps

	chunks := [][]byte{make([]byte, 1024), make([]byte, 512), make([]byte, 512)}
	seq, err := rater.SeqFunc(slices.Values(chunks), func(b []byte) int { return len(b) },
		rater.WithClock(c), rater.WithFunc(func(b rater.Bps) { got = append(got, b) }))
	require.NoError(t, err)

	for range seq {
		c.Add(time.Second)
	}

	require.Equal(t, []rater.Bps{1536, 512, 0}, got)
}

func TestSeq_Break(t *testing.T) {
	t.Parallel()

	pulled := 0
	var source iter.Seq[int] = func(yield func(int) bool) {
		for i := 0; ; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	seq, err := rater.Seq(source, rater.WithClock(clock.NewMock()))
	require.NoError(t, err)

	for v := range seq {
		if v == 4 {
			break
		}
	}

	require.Equal(t, 5, pulled)
}
