package rater

import (
	"iter"

	"throughput/internal/pkg/unsafe"
)

// Seq reports the throughput of a sequence, counting the in-memory size of each item.
func Seq[T any](seq iter.Seq[T], opts ...Option) (iter.Seq[T], error) {
	return SeqFunc(seq, func(item T) int { return unsafe.SizeOf(item) }, opts...)
}

// Bytes reports the throughput of a byte sequence, one byte per item.
func Bytes(seq iter.Seq[byte], opts ...Option) (iter.Seq[byte], error) {
	return SeqFunc(seq, func(byte) int { return 1 }, opts...)
}

// SeqFunc reports the throughput of a sequence, counting size(item) bytes per item.
//
// The returned sequence is single-use, it shares one counter and clock across ranges.
func SeqFunc[T any](seq iter.Seq[T], size func(T) int, opts ...Option) (iter.Seq[T], error) {
	r, err := newRater(opts)
	if err != nil {
		return nil, err
	}

	return func(yield func(T) bool) {
		for item := range seq {
			r.Add(size(item))
			if !yield(item) {
				return
			}
		}

		r.tick()
	}, nil
}
