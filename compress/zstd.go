package compress

import "github.com/arloliu/sigtab/format"

// ZstdCompressor compresses sample streams with Zstandard.
//
// It is the default codec of compressed signal tables: varint encoded nanopore-style
// signal compresses well and decompression stays fast enough for random row access.
// The implementation is selected at build time, see zstd_pure.go and zstd_cgo.go.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType { return format.CompressionZstd }
