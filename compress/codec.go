package compress

import (
	"fmt"

	"github.com/arloliu/sigtab/errs"
	"github.com/arloliu/sigtab/format"
)

// Compressor compresses encoded sample streams.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// The returned slice is owned by the caller. The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses blobs produced by the matching Compressor.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses data and returns the original bytes.
	//
	// An error is returned if data is corrupted or was produced by another algorithm.
	// Empty input decompresses to an empty result.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
	// Type reports the compression algorithm implemented by the codec.
	Type() format.CompressionType
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for the specified compression type.
//
// Returns an error wrapping errs.ErrInvalidCompression for unknown types.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
