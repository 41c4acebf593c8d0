package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/sigtab/errs"
	"github.com/arloliu/sigtab/internal/pool"
)

// SampleDeltaEncoder implements ColumnarEncoder for int16 samples using delta,
// zigzag and varint encoding.
//
// Typical sizes:
//   - flat or slowly varying signal (|delta| < 64): 1 byte per sample
//   - |delta| < 8192: 2 bytes per sample
//   - worst case (full-scale swings): 3 bytes per sample
type SampleDeltaEncoder struct {
	prev  int16
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[int16] = (*SampleDeltaEncoder)(nil)

// NewSampleDeltaEncoder creates a new encoder backed by a pooled buffer.
func NewSampleDeltaEncoder() *SampleDeltaEncoder {
	return &SampleDeltaEncoder{
		buf: pool.GetEncodeBuffer(),
	}
}

// Write encodes a single sample.
//
// Panics if Finish() has been called.
func (e *SampleDeltaEncoder) Write(sample int16) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.buf.Grow(binary.MaxVarintLen32)
	e.buf.B = binary.AppendUvarint(e.buf.B, uint64(zigzag(int32(sample)-int32(e.prev))))
	e.prev = sample
	e.count++
}

// WriteSlice encodes a slice of samples.
//
// The buffer is grown once assuming two bytes per sample, which covers typical signal.
//
// Panics if Finish() has been called.
func (e *SampleDeltaEncoder) WriteSlice(samples []int16) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	if len(samples) == 0 {
		return
	}

	e.buf.Grow(len(samples) * 2)

	b := e.buf.B
	prev := e.prev
	for _, s := range samples {
		b = binary.AppendUvarint(b, uint64(zigzag(int32(s)-int32(prev))))
		prev = s
	}
	e.buf.B = b
	e.prev = prev
	e.count += len(samples)
}

// Bytes returns the encoded stream.
func (e *SampleDeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded samples.
func (e *SampleDeltaEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *SampleDeltaEncoder) Size() int {
	return e.buf.Len()
}

// Reset restarts delta encoding from zero. Accumulated bytes are kept.
func (e *SampleDeltaEncoder) Reset() {
	e.prev = 0
}

// Finish returns the buffer to the pool.
func (e *SampleDeltaEncoder) Finish() {
	pool.PutEncodeBuffer(e.buf)
	e.buf = nil
}

// SampleDeltaDecoder decodes streams produced by SampleDeltaEncoder.
//
// It is stateless and safe for concurrent use.
type SampleDeltaDecoder struct{}

var _ ColumnarDecoder[int16] = SampleDeltaDecoder{}

// NewSampleDeltaDecoder creates a new decoder.
func NewSampleDeltaDecoder() SampleDeltaDecoder {
	return SampleDeltaDecoder{}
}

// Count returns the number of samples in data without materializing them.
func (d SampleDeltaDecoder) Count(data []byte) (int, error) {
	count := 0
	for pos := 0; pos < len(data); count++ {
		_, n := binary.Uvarint(data[pos:])
		if n <= 0 {
			return count, fmt.Errorf("%w: at byte %d", errs.ErrTruncatedSamples, pos)
		}
		pos += n
	}

	return count, nil
}

// DecodeInto decodes data into out and returns the total number of samples in data.
//
// When the stream holds more samples than out can take, decoding continues without
// writing so that the true count is still reported.
func (d SampleDeltaDecoder) DecodeInto(data []byte, out []int16) (int, error) {
	count := 0
	prev := int32(0)
	for pos := 0; pos < len(data); count++ {
		v, n := binary.Uvarint(data[pos:])
		if n <= 0 || v > math.MaxUint32 {
			return count, fmt.Errorf("%w: at byte %d", errs.ErrTruncatedSamples, pos)
		}
		pos += n

		sample := prev + unzigzag(uint32(v))
		if sample < math.MinInt16 || sample > math.MaxInt16 {
			return count, fmt.Errorf("%w: sample %d decodes to %d", errs.ErrSampleOverflow, count, sample)
		}
		prev = sample

		if count < len(out) {
			out[count] = int16(sample)
		}
	}

	return count, nil
}

// AppendSamples appends the samples encoded in data to dst.
func (d SampleDeltaDecoder) AppendSamples(dst []int16, data []byte) ([]int16, error) {
	n, err := d.Count(data)
	if err != nil {
		return dst, err
	}

	start := len(dst)
	dst = append(dst, make([]int16, n)...)
	if _, err := d.DecodeInto(data, dst[start:]); err != nil {
		return dst[:start], err
	}

	return dst, nil
}

func zigzag(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31)) //nolint:gosec
}

func unzigzag(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1) //nolint:gosec
}
