// Package endian provides byte order utilities for serializing signal samples.
//
// Samples are held in memory as native int16 values. Whenever a stable byte
// representation is required, for example when computing a digest that must match
// across machines, the samples are serialized through an EndianEngine. The format
// always uses little-endian, matching the Arrow IPC buffers the signal table is
// stored in.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendSamples(engine, buf[:0], samples)
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// SampleSize is the size of one serialized sample in bytes.
const SampleSize = 2

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// AppendSamples appends the serialized form of samples to dst and returns the extended slice.
func AppendSamples(engine EndianEngine, dst []byte, samples []int16) []byte {
	dst = growBy(dst, len(samples)*SampleSize)
	for _, s := range samples {
		dst = engine.AppendUint16(dst, uint16(s)) //nolint:gosec
	}

	return dst
}

func growBy(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}

	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)

	return grown
}
