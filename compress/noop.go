package compress

import "github.com/arloliu/sigtab/format"

// NoOpCompressor stores encoded sample streams without compression.
//
// Useful for tables whose samples are already dense after varint encoding, and as a
// baseline when comparing codecs.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Type returns format.CompressionNone.
func (c NoOpCompressor) Type() format.CompressionType { return format.CompressionNone }

// Compress returns data unchanged. The result shares memory with the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged. The result shares memory with the input, so callers
// must not modify it when the input belongs to an immutable record batch.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
