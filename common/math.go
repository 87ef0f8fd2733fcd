package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// NextPowerOfTwo returns the smallest power of two that is >= n, or 1 for n <= 1.
// Used to grow GPU buffers geometrically so a slowly growing batch does not reallocate every frame.
//
// Parameters:
//   - n: the minimum capacity required
//
// Returns:
//   - int: the rounded-up capacity
func NextPowerOfTwo(n int) int {
	c := 1
	for c < n {
		c <<= 1
	}
	return c
}

// WrapAngle wraps an angle in radians into [0, 2π).
//
// Parameters:
//   - a: the angle in radians
//
// Returns:
//   - float32: the equivalent angle in [0, 2π)
func WrapAngle(a float32) float32 {
	const tau = 2 * math32.Pi
	a = math32.Mod(a, tau)
	if a < 0 {
		a += tau
	}
	return a
}
