package section

// Column names of the signal table.
const (
	ColumnReadID  = "read_id"
	ColumnSignal  = "signal"
	ColumnSamples = "samples"
)

// Schema and field metadata keys.
const (
	MetaKeyVersion        = "MINKNOW:pod5_version"
	MetaKeySoftware       = "MINKNOW:software"
	MetaKeyFileIdentifier = "MINKNOW:file_identifier"

	// FieldKeyCompression names the byte codec of a compressed signal column.
	FieldKeyCompression = "compression"
)

// Table layout versions.
const (
	// CurrentVersion is the version written by this module.
	CurrentVersion = "0.3.0"
	// SupportedVersions is the constraint every readable table version must satisfy.
	SupportedVersions = ">= 0.1.0, < 1.0.0"
)

// ReadIDSize is the byte width of the read_id column.
const ReadIDSize = 16

// SampleSize is the size of one sample in bytes.
const SampleSize = 2
