// Package rater measures the throughput of readers, writers and sequences.
//
// A wrapper counts every byte passing through it and, once per interval,
// reports the rate since the previous report:
//
//	r, err := rater.NewReader(src)
//	if err != nil {
//		return err
//	}
//	_, err = io.Copy(dst, r)
//
// prints lines like "28.06 GiB/s" to stdout. Reporting happens inline in the
// Read/Write call, the wrappers never start goroutines or throttle the stream.
package rater

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/negrel/assert"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/trim21/errgo"
	"go.uber.org/atomic"

	"throughput/internal/pkg/as"
)

const DefaultInterval = time.Second

var ErrInvalidInterval = errors.New("report interval must be positive")

// Rater is the counter and clock shared by all wrapper kinds.
// It is not safe for concurrent use, except Total.
type Rater struct {
	clock    clock.Clock
	report   func(Bps) error
	log      zerolog.Logger
	last     time.Time
	interval time.Duration
	bytes    uint64
	total    atomic.Uint64
}

func newRater(opts []Option) (*Rater, error) {
	r := &Rater{
		clock:    clock.New(),
		interval: DefaultInterval,
		log:      log.With().Str("component", "rater").Logger(),
	}

	r.report = writeLine(os.Stdout)

	for _, opt := range opts {
		opt(r)
	}

	if r.interval <= 0 {
		return nil, errgo.Wrap(ErrInvalidInterval, fmt.Sprintf("invalid interval %s", r.interval))
	}

	r.last = r.clock.Now()

	return r, nil
}

// Add counts n more bytes and reports if the interval has elapsed.
func (r *Rater) Add(n int) {
	assert.True(n >= 0, "negative byte count")

	c := as.Uint64(n)
	r.bytes += c
	r.total.Add(c)

	r.tick()
}

// Pending returns the bytes counted since the last report.
func (r *Rater) Pending() uint64 {
	return r.bytes
}

// Total returns the bytes counted since construction.
// It's safe to call from another goroutine.
func (r *Rater) Total() uint64 {
	return r.total.Load()
}

func (r *Rater) tick() {
	now := r.clock.Now()
	elapsed := now.Sub(r.last)
	// interval is positive, so a reported elapsed time is never zero
	if elapsed < r.interval {
		return
	}

	bps := Bps(float64(r.bytes) / elapsed.Seconds())

	if err := r.report(bps); err != nil {
		r.log.Warn().Err(err).Msg("failed to report throughput")
	}

	r.bytes = 0
	r.last = now
}

func writeLine(w io.Writer) func(Bps) error {
	return func(b Bps) error {
		_, err := fmt.Fprintln(w, b.String())
		return err
	}
}
