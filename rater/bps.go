package rater

import (
	"github.com/docker/go-units"
)

var binaryAbbrs = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// Bps is a rate in bytes per second.
type Bps float64

// String formats the rate with 1024-based units and two decimals, e.g. "1.50 KiB/s".
func (b Bps) String() string {
	v := float64(b)
	if v < 0 {
		v = 0
	}

	return units.CustomSize("%.2f %s", v, 1024, binaryAbbrs) + "/s"
}

// Format returns the rate of n bytes over the given seconds.
// Non-positive seconds format as a zero rate.
func Format(n uint64, seconds float64) string {
	if seconds <= 0 {
		return Bps(0).String()
	}

	return Bps(float64(n) / seconds).String()
}
