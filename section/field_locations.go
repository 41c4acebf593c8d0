package section

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/arloliu/sigtab/errs"
	"github.com/arloliu/sigtab/format"
)

// FieldLocations is the field-location map of a signal table: the column index of every
// signal table column, plus the storage mode they imply.
//
// It is resolved once when a table is opened and shared, read-only, by the reader and
// all of its batches.
type FieldLocations struct {
	// ReadID is the index of the read_id column.
	ReadID int
	// Signal is the index of the signal column, raw or compressed depending on SignalType.
	Signal int
	// Samples is the index of the samples column.
	Samples int

	// SignalType tells whether the signal column stores raw samples or compressed blobs.
	SignalType format.SignalType
	// Compression is the byte codec of compressed blobs. Only meaningful when
	// SignalType is format.SignalCompressed.
	Compression format.CompressionType

	numFields int
	types     [3]arrow.DataType // read_id, signal, samples
}

// IsCompressed reports whether the signal column holds compressed blobs.
func (f *FieldLocations) IsCompressed() bool {
	return f.SignalType == format.SignalCompressed
}

// ParseFieldLocations validates schema against the signal table layout and resolves
// the column positions.
//
// Returns an error wrapping errs.ErrSchema when a column is missing, duplicated or of
// the wrong type, or when the signal field names an unknown compression.
func ParseFieldLocations(schema *arrow.Schema) (*FieldLocations, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: nil schema", errs.ErrSchema)
	}

	loc := &FieldLocations{numFields: schema.NumFields()}

	var err error
	if loc.ReadID, err = findColumn(schema, ColumnReadID); err != nil {
		return nil, err
	}
	if loc.Signal, err = findColumn(schema, ColumnSignal); err != nil {
		return nil, err
	}
	if loc.Samples, err = findColumn(schema, ColumnSamples); err != nil {
		return nil, err
	}

	readID := schema.Field(loc.ReadID)
	if !isReadIDType(readID.Type) {
		return nil, fmt.Errorf("%w: %s is %s, want fixed_size_binary(%d)",
			errs.ErrInvalidColumnType, ColumnReadID, readID.Type, ReadIDSize)
	}

	samples := schema.Field(loc.Samples)
	if samples.Type.ID() != arrow.UINT32 {
		return nil, fmt.Errorf("%w: %s is %s, want uint32", errs.ErrInvalidColumnType, ColumnSamples, samples.Type)
	}

	signal := schema.Field(loc.Signal)
	switch signal.Type.ID() { //nolint:exhaustive
	case arrow.LIST, arrow.LARGE_LIST:
		elem := signal.Type.(arrow.ListLikeType).Elem()
		if elem.ID() != arrow.INT16 {
			return nil, fmt.Errorf("%w: %s is %s, want list of int16", errs.ErrInvalidColumnType, ColumnSignal, signal.Type)
		}
		loc.SignalType = format.SignalUncompressed
		loc.Compression = format.CompressionNone
	case arrow.BINARY, arrow.LARGE_BINARY:
		loc.SignalType = format.SignalCompressed
		if loc.Compression, err = signalCompression(signal); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s is %s, want list of int16 or binary", errs.ErrInvalidColumnType, ColumnSignal, signal.Type)
	}

	loc.types = [3]arrow.DataType{readID.Type, signal.Type, samples.Type}

	return loc, nil
}

// CheckBatchSchema verifies that a record batch schema lays out the signal columns
// exactly as the table schema the locations were parsed from.
func (f *FieldLocations) CheckBatchSchema(schema *arrow.Schema) error {
	if schema == nil || schema.NumFields() != f.numFields {
		return fmt.Errorf("%w: field count differs", errs.ErrBatchSchemaMismatch)
	}

	for i, idx := range [3]int{f.ReadID, f.Signal, f.Samples} {
		if !arrow.TypeEqual(schema.Field(idx).Type, f.types[i]) {
			return fmt.Errorf("%w: field %d (%s) is %s, want %s",
				errs.ErrBatchSchemaMismatch, idx, schema.Field(idx).Name, schema.Field(idx).Type, f.types[i])
		}
	}

	return nil
}

func findColumn(schema *arrow.Schema, name string) (int, error) {
	indices := schema.FieldIndices(name)
	switch len(indices) {
	case 0:
		return -1, fmt.Errorf("%w: %s", errs.ErrMissingColumn, name)
	case 1:
		return indices[0], nil
	default:
		return -1, fmt.Errorf("%w: %s appears %d times", errs.ErrInvalidColumnType, name, len(indices))
	}
}

func isReadIDType(dt arrow.DataType) bool {
	if ext, ok := dt.(arrow.ExtensionType); ok {
		dt = ext.StorageType()
	}

	fsb, ok := dt.(*arrow.FixedSizeBinaryType)

	return ok && fsb.ByteWidth == ReadIDSize
}

func signalCompression(field arrow.Field) (format.CompressionType, error) {
	idx := field.Metadata.FindKey(FieldKeyCompression)
	if idx < 0 {
		return DefaultSignalCompression, nil
	}

	name := field.Metadata.Values()[idx]
	ct, ok := format.ParseCompressionType(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
	}

	return ct, nil
}

// DefaultSignalCompression is assumed for compressed signal columns without a
// compression metadata entry.
const DefaultSignalCompression = format.CompressionZstd
