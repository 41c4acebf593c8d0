// Package hash computes stable digests of signal samples.
//
// Samples are serialized little-endian before hashing, so a digest only depends on
// sample values and order, never on the machine or on how the samples were stored
// (raw or compressed) in the table.
package hash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/sigtab/endian"
)

// digestChunk is the number of samples serialized per Write call.
const digestChunk = 512

// SampleDigest is a streaming xxHash64 over a sequence of samples.
//
// The zero value is not usable; create one with NewSampleDigest.
type SampleDigest struct {
	d      *xxhash.Digest
	engine endian.EndianEngine
	buf    [digestChunk * endian.SampleSize]byte
}

// NewSampleDigest creates an empty digest.
func NewSampleDigest() *SampleDigest {
	return &SampleDigest{
		d:      xxhash.New(),
		engine: endian.GetLittleEndianEngine(),
	}
}

// WriteSamples appends samples to the digest.
func (s *SampleDigest) WriteSamples(samples []int16) {
	for len(samples) > 0 {
		n := min(len(samples), digestChunk)
		b := endian.AppendSamples(s.engine, s.buf[:0], samples[:n])
		_, _ = s.d.Write(b)
		samples = samples[n:]
	}
}

// Sum64 returns the digest of all samples written so far.
func (s *SampleDigest) Sum64() uint64 {
	return s.d.Sum64()
}

// Reset clears the digest.
func (s *SampleDigest) Reset() {
	s.d.Reset()
}

// Samples returns the xxHash64 digest of samples.
func Samples(samples []int16) uint64 {
	d := NewSampleDigest()
	d.WriteSamples(samples)

	return d.Sum64()
}
