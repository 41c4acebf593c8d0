// Package encoding implements the sample pre-pass of compressed signal rows.
//
// Each sample is stored as the difference from the previous sample (the first sample
// is taken relative to zero), zigzag mapped to an unsigned value and written as a
// varint:
//
//	delta  := int32(sample) - int32(previous)
//	zigzag := uint32((delta << 1) ^ (delta >> 31))
//	bytes  := binary.AppendUvarint(dst, uint64(zigzag))
//
// Sensor signal moves in small steps, so most samples take a single byte. The
// resulting stream is then handed to a general-purpose compressor (see the compress
// package).
//
// The stream carries no header: the number of samples is the number of varints,
// which is why decoding reports the count it found and lets the caller compare it
// against independently stored metadata.
package encoding
