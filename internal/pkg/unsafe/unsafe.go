package unsafe

import (
	"unsafe"
)

// SizeOf returns the in-memory size of v, not counting memory it points to.
func SizeOf[T any](v T) int {
	return int(unsafe.Sizeof(v))
}
