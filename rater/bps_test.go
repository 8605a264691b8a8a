package rater_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"throughput/rater"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		expected string
		n        uint64
		seconds  float64
	}{
		{"0.00 B/s", 0, 1},
		{"1.00 B/s", 1, 1},
		{"1023.00 B/s", 1023, 1},
		{"1.00 KiB/s", 1024, 1},
		{"1.50 KiB/s", 1536, 1},
		{"1.00 MiB/s", 1 << 20, 1},
		{"1.00 GiB/s", 1073741824, 1},
		{"1.00 TiB/s", 1 << 40, 1},
		{"1.00 PiB/s", 1 << 50, 1},
		{"1.00 EiB/s", 1 << 60, 1},
		{"16.00 EiB/s", math.MaxUint64, 1},
		{"512.00 B/s", 1024, 2},
		{"909.09 B/s", 1000, 1.1},
		{"0.00 B/s", 1024, 0},
		{"0.00 B/s", 1024, -1},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, rater.Format(tc.n, tc.seconds), "%d bytes in %fs", tc.n, tc.seconds)
	}
}

func TestBps_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.50 B/s", rater.Bps(0.5).String())
	require.Equal(t, "0.00 B/s", rater.Bps(-3).String())
	// stays in EiB instead of running out of units
	require.Equal(t, "1024.00 EiB/s", rater.Bps(math.Pow(1024, 7)).String())
}
