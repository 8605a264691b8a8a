package rater

import (
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

type Option func(r *Rater)

// WithInterval sets how often the rate is reported, one second by default.
// A non-positive interval makes the constructor fail with ErrInvalidInterval.
func WithInterval(d time.Duration) Option {
	return func(r *Rater) {
		r.interval = d
	}
}

// WithOutput writes each measurement as a line to w, os.Stdout by default.
func WithOutput(w io.Writer) Option {
	return func(r *Rater) {
		r.report = writeLine(w)
	}
}

// WithFunc calls fn with each measurement instead of writing it.
func WithFunc(fn func(Bps)) Option {
	return func(r *Rater) {
		r.report = func(b Bps) error {
			fn(b)
			return nil
		}
	}
}

// WithChannel sends each measurement to ch.
// Measurements are dropped when ch is full, the wrapper never blocks on it.
func WithChannel(ch chan<- Bps) Option {
	return func(r *Rater) {
		r.report = func(b Bps) error {
			select {
			case ch <- b:
			default:
				r.log.Debug().Stringer("rate", b).Msg("report channel full, measurement dropped")
			}
			return nil
		}
	}
}

func WithClock(c clock.Clock) Option {
	return func(r *Rater) {
		r.clock = c
	}
}

// WithLogger replaces the logger used for report failures.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Rater) {
		r.log = l
	}
}
