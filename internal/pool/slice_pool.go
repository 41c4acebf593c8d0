package pool

import "sync"

// sampleSlicePool holds scratch sample buffers, used where the reader needs samples
// for its own computation rather than for a caller-owned buffer.
var sampleSlicePool = sync.Pool{
	New: func() any { return &[]int16{} },
}

// sampleSliceMaxRetained bounds the capacity of slices returned to the pool (16MiB of samples).
const sampleSliceMaxRetained = 8 * 1024 * 1024

// GetSampleSlice retrieves an int16 slice of exactly size elements from the pool.
//
// If the pooled slice has insufficient capacity, a new slice is allocated. The contents
// are not cleared. The caller must call the returned cleanup function to return the
// slice to the pool.
//
// Example:
//
//	samples, cleanup := pool.GetSampleSlice(int(count))
//	defer cleanup()
func GetSampleSlice(size int) ([]int16, func()) {
	ptr, _ := sampleSlicePool.Get().(*[]int16)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]int16, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() {
		if cap(*ptr) > sampleSliceMaxRetained {
			return
		}
		sampleSlicePool.Put(ptr)
	}
}
