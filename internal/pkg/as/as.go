//go:build !release

// runtime check int overflow

package as

import (
	"fmt"
	"reflect"
)

func Uint64[T int8 | int16 | int32 | int64 | int | uint8 | uint16 | uint32 | uint](v T) uint64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint:
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		if rv.Int() < 0 {
			panic(fmt.Sprintf("%d overflow uint64", v))
		}
	default:
		panic("unhandled default case")
	}

	return uint64(v)
}
