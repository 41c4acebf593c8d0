package section

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/arloliu/sigtab/errs"
	"github.com/arloliu/sigtab/format"
)

// NewSignalSchema builds the Arrow schema of a signal table.
//
// Uncompressed tables store the signal column as large_list<int16>; compressed tables
// store it as large_binary and record compression in the signal field metadata.
func NewSignalSchema(signalType format.SignalType, compression format.CompressionType, meta SchemaMetadata) (*arrow.Schema, error) {
	signal := arrow.Field{Name: ColumnSignal}

	switch signalType {
	case format.SignalUncompressed:
		signal.Type = arrow.LargeListOf(arrow.PrimitiveTypes.Int16)
	case format.SignalCompressed:
		if _, ok := format.ParseCompressionType(compression.MetadataValue()); !ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compression)
		}
		signal.Type = arrow.BinaryTypes.LargeBinary
		signal.Metadata = arrow.NewMetadata([]string{FieldKeyCompression}, []string{compression.MetadataValue()})
	default:
		return nil, fmt.Errorf("%w: unknown signal type %d", errs.ErrInvalidColumnType, signalType)
	}

	md := meta.ToArrow()
	fields := []arrow.Field{
		{Name: ColumnReadID, Type: &arrow.FixedSizeBinaryType{ByteWidth: ReadIDSize}},
		signal,
		{Name: ColumnSamples, Type: arrow.PrimitiveTypes.Uint32},
	}

	return arrow.NewSchema(fields, &md), nil
}
