// Package codec implements the sample codec of compressed signal rows.
//
// A SampleCodec turns a row of 16-bit samples into a compressed blob and back. It
// chains the delta-varint pre-pass from the encoding package with a byte codec from
// the compress package:
//
//	samples -> delta/zigzag/varint -> zstd|s2|lz4|none -> blob
//
// Decode writes straight into a caller-owned buffer and reports how many samples the
// blob actually holds, so callers can detect disagreement with sample counts stored
// elsewhere.
//
// A SampleCodec is immutable and safe for concurrent use.
package codec

import (
	"fmt"
	"slices"

	"github.com/arloliu/sigtab/compress"
	"github.com/arloliu/sigtab/encoding"
	"github.com/arloliu/sigtab/format"
)

// DefaultCompression is the byte codec used when a table does not name one.
const DefaultCompression = format.CompressionZstd

// SampleCodec encodes and decodes compressed signal rows.
type SampleCodec struct {
	compression format.CompressionType
	bytes       compress.Codec
	decoder     encoding.SampleDeltaDecoder
}

// New creates a SampleCodec using the given byte compression.
//
// Returns an error if the compression type is unknown.
func New(compression format.CompressionType) (*SampleCodec, error) {
	bc, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	return &SampleCodec{
		compression: compression,
		bytes:       bc,
		decoder:     encoding.NewSampleDeltaDecoder(),
	}, nil
}

// Default returns a SampleCodec using DefaultCompression.
func Default() *SampleCodec {
	c, err := New(DefaultCompression)
	if err != nil {
		panic(fmt.Sprintf("default sample codec: %v", err))
	}

	return c
}

// Compression returns the byte compression of the codec.
func (c *SampleCodec) Compression() format.CompressionType {
	return c.compression
}

// Encode compresses samples into a new blob owned by the caller.
func (c *SampleCodec) Encode(samples []int16) ([]byte, error) {
	enc := encoding.NewSampleDeltaEncoder()
	defer enc.Finish()

	enc.WriteSlice(samples)

	out, err := c.bytes.Compress(enc.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress %d samples: %w", len(samples), err)
	}

	if c.compression == format.CompressionNone {
		// the no-op codec aliases the pooled encoder buffer
		return slices.Clone(out), nil
	}

	return out, nil
}

// Decode decompresses blob into out and returns the number of samples held by blob.
//
// At most len(out) samples are written. A result different from len(out) means the
// blob and the buffer disagree; it is not reported as an error here.
func (c *SampleCodec) Decode(blob []byte, out []int16) (int, error) {
	raw, err := c.bytes.Decompress(blob)
	if err != nil {
		return 0, fmt.Errorf("decompress %s blob: %w", c.compression, err)
	}

	return c.decoder.DecodeInto(raw, out)
}

// SampleCount returns the number of samples held by blob.
//
// It has to decompress the blob; prefer the stored sample count when one exists.
func (c *SampleCodec) SampleCount(blob []byte) (int, error) {
	raw, err := c.bytes.Decompress(blob)
	if err != nil {
		return 0, fmt.Errorf("decompress %s blob: %w", c.compression, err)
	}

	return c.decoder.Count(raw)
}

// DecodeAll decompresses blob into a newly allocated slice.
func (c *SampleCodec) DecodeAll(blob []byte) ([]int16, error) {
	raw, err := c.bytes.Decompress(blob)
	if err != nil {
		return nil, fmt.Errorf("decompress %s blob: %w", c.compression, err)
	}

	return c.decoder.AppendSamples(nil, raw)
}
