package format

import "strings"

type (
	SignalType      uint8
	CompressionType uint8
)

const (
	SignalUncompressed SignalType = 0x1 // SignalUncompressed stores samples verbatim as a list of int16.
	SignalCompressed   SignalType = 0x2 // SignalCompressed stores samples as an encoded and compressed blob.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (s SignalType) String() string {
	switch s {
	case SignalUncompressed:
		return "Uncompressed"
	case SignalCompressed:
		return "Compressed"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// MetadataValue returns the lower-case name stored in the signal field metadata.
func (c CompressionType) MetadataValue() string {
	return strings.ToLower(c.String())
}

// ParseCompressionType maps a field metadata value back to a CompressionType.
// Matching is case-insensitive. The second return value is false for unknown names.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
