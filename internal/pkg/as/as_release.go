//go:build release

package as

func Uint64[T int8 | int16 | int32 | int64 | int | uint8 | uint16 | uint32 | uint](v T) uint64 {
	return uint64(v)
}
