// Package compress provides the byte-level compression codecs used by compressed
// signal tables.
//
// A compressed signal row is produced in two stages:
//
//  1. Encoding: samples are delta encoded, zigzag mapped and written as varints
//     (see the encoding package).
//  2. Compression: the varint stream is compressed with one of the codecs in this
//     package.
//
// The codec of a table is named in the metadata of its signal field and resolved
// once when the table is opened:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(blob)
//
// # Supported Algorithms
//
//   - None: the varint stream is stored as-is
//   - Zstd: default for compressed tables; pure Go (klauspost/compress) unless the
//     module is built with the cgo and gozstd tags, in which case valyala/gozstd is used
//   - S2: klauspost/compress/s2 block format
//   - LZ4: pierrec/lz4 block format
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and decoders. They are safe
// for concurrent use, which the signal table reader relies on: many goroutines decode
// rows of the same table at once.
package compress
