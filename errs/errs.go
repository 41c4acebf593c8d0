// Package errs defines the sentinel errors returned by sigtab packages.
//
// Errors are wrapped with context (row index, batch index, expected and actual sizes)
// using fmt.Errorf and the %w verb, so callers should compare with errors.Is:
//
//	if errors.Is(err, errs.ErrSizeMismatch) {
//	    // resize the buffer with ExtractSampleCount and retry
//	}
package errs

import "errors"

// Row and buffer errors.
var (
	// ErrOutOfRange is returned when a global row, local row or batch index exceeds the available count.
	ErrOutOfRange = errors.New("index out of range")
	// ErrSizeMismatch is returned when a caller-supplied buffer length differs from the expected sample count.
	ErrSizeMismatch = errors.New("sample buffer size mismatch")
	// ErrCorruptData is returned when stored samples disagree with the sample count metadata,
	// or when a compressed row cannot be decoded.
	ErrCorruptData = errors.New("corrupt signal data")
	// ErrInvalidReadID is returned when a read_id value is nil or not 16 bytes.
	ErrInvalidReadID = errors.New("invalid read id")
)

// Schema errors. All of them wrap ErrSchema.
var (
	// ErrSchema is returned when a table does not match the signal table layout.
	ErrSchema = errors.New("invalid signal table schema")

	ErrMissingColumn       = wrap(ErrSchema, "missing column")
	ErrInvalidColumnType   = wrap(ErrSchema, "invalid column type")
	ErrMissingVersion      = wrap(ErrSchema, "missing schema version")
	ErrUnsupportedVersion  = wrap(ErrSchema, "unsupported schema version")
	ErrInvalidCompression  = wrap(ErrSchema, "invalid signal compression")
	ErrInvalidFileIdentity = wrap(ErrSchema, "invalid file identifier")
	ErrBatchSchemaMismatch = wrap(ErrSchema, "batch schema does not match table schema")
)

// Codec errors.
var (
	// ErrTruncatedSamples is returned when an encoded sample stream ends in the middle of a value.
	ErrTruncatedSamples = errors.New("truncated sample stream")
	// ErrSampleOverflow is returned when a decoded sample does not fit in 16 bits.
	ErrSampleOverflow = errors.New("decoded sample overflows int16")
)

type wrapped struct {
	parent error
	msg    string
}

func wrap(parent error, msg string) error {
	return &wrapped{parent: parent, msg: msg}
}

func (e *wrapped) Error() string { return e.parent.Error() + ": " + e.msg }

func (e *wrapped) Unwrap() error { return e.parent }
