// Package signaltest builds signal tables for tests and examples.
//
// A Builder collects batches of rows and produces either in-memory Arrow records or a
// complete Arrow IPC file. Rows can carry inconsistent sample counts or hand-made
// blobs, which is how tests produce corrupt tables.
package signaltest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"

	"github.com/arloliu/sigtab/codec"
	"github.com/arloliu/sigtab/format"
	"github.com/arloliu/sigtab/internal/options"
	"github.com/arloliu/sigtab/section"
)

// Row is one row of a fixture table.
type Row struct {
	// ReadID is written to the read_id column; a random id is used when zero.
	ReadID uuid.UUID
	// Samples are the row samples, stored raw or encoded depending on the table mode.
	Samples []int16
	// Count overrides the samples column when non-nil.
	Count *uint32
	// Blob replaces the encoded signal of compressed tables when non-nil.
	Blob []byte
}

// Builder assembles a fixture table.
type Builder struct {
	signalType  format.SignalType
	compression format.CompressionType
	meta        section.SchemaMetadata
	small       bool
	mem         memory.Allocator
	batches     [][]Row
}

// Option configures a Builder.
type Option = options.Option[*Builder]

// WithCompression selects the byte codec of compressed tables.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(b *Builder) { b.compression = ct })
}

// WithMetadata sets the schema metadata written with the table.
func WithMetadata(meta section.SchemaMetadata) Option {
	return options.NoError(func(b *Builder) { b.meta = meta })
}

// WithSmallOffsets stores the signal column as list<int16> or binary instead of their
// 64-bit offset variants.
func WithSmallOffsets() Option {
	return options.NoError(func(b *Builder) { b.small = true })
}

// WithAllocator sets the allocator used to build records.
func WithAllocator(mem memory.Allocator) Option {
	return options.New(func(b *Builder) error {
		if mem == nil {
			return errors.New("allocator must not be nil")
		}
		b.mem = mem

		return nil
	})
}

// NewBuilder creates a Builder for a table of the given storage mode.
func NewBuilder(signalType format.SignalType, opts ...Option) (*Builder, error) {
	b := &Builder{
		signalType:  signalType,
		compression: codec.DefaultCompression,
		mem:         memory.DefaultAllocator,
	}
	if signalType == format.SignalUncompressed {
		b.compression = format.CompressionNone
	}

	if err := options.Apply(b, opts...); err != nil {
		return nil, err
	}

	return b, nil
}

// AddBatch appends a record batch holding rows.
func (b *Builder) AddBatch(rows ...Row) *Builder {
	b.batches = append(b.batches, rows)
	return b
}

// Schema returns the table schema.
func (b *Builder) Schema() (*arrow.Schema, error) {
	schema, err := section.NewSignalSchema(b.signalType, b.compression, b.meta)
	if err != nil {
		return nil, err
	}

	if !b.small {
		return schema, nil
	}

	fields := schema.Fields()
	switch b.signalType {
	case format.SignalUncompressed:
		fields[1].Type = arrow.ListOf(arrow.PrimitiveTypes.Int16)
	case format.SignalCompressed:
		fields[1].Type = arrow.BinaryTypes.Binary
	}
	md := schema.Metadata()

	return arrow.NewSchema(fields, &md), nil
}

// Records builds one record per batch. The caller must release every record.
func (b *Builder) Records() ([]arrow.Record, *arrow.Schema, error) {
	schema, err := b.Schema()
	if err != nil {
		return nil, nil, err
	}

	var sc *codec.SampleCodec
	if b.signalType == format.SignalCompressed {
		if sc, err = codec.New(b.compression); err != nil {
			return nil, nil, err
		}
	}

	recs := make([]arrow.Record, 0, len(b.batches))
	for i, rows := range b.batches {
		rec, err := b.buildRecord(schema, sc, rows)
		if err != nil {
			for _, r := range recs {
				r.Release()
			}

			return nil, nil, fmt.Errorf("batch %d: %w", i, err)
		}
		recs = append(recs, rec)
	}

	return recs, schema, nil
}

func (b *Builder) buildRecord(schema *arrow.Schema, sc *codec.SampleCodec, rows []Row) (arrow.Record, error) {
	rb := array.NewRecordBuilder(b.mem, schema)
	defer rb.Release()

	ids := rb.Field(0).(*array.FixedSizeBinaryBuilder)
	counts := rb.Field(2).(*array.Uint32Builder)

	for _, row := range rows {
		id := row.ReadID
		if id == uuid.Nil {
			id = uuid.New()
		}
		ids.Append(id[:])

		count := uint32(len(row.Samples))
		if row.Count != nil {
			count = *row.Count
		}
		counts.Append(count)

		switch sig := rb.Field(1).(type) {
		case *array.LargeListBuilder:
			sig.Append(true)
			sig.ValueBuilder().(*array.Int16Builder).AppendValues(row.Samples, nil)
		case *array.ListBuilder:
			sig.Append(true)
			sig.ValueBuilder().(*array.Int16Builder).AppendValues(row.Samples, nil)
		case *array.BinaryBuilder:
			blob := row.Blob
			if blob == nil {
				var err error
				if blob, err = sc.Encode(row.Samples); err != nil {
					return nil, err
				}
			}
			sig.Append(blob)
		default:
			return nil, fmt.Errorf("unexpected signal builder %T", sig)
		}
	}

	return rb.NewRecord(), nil
}

// WriteIPC encodes the table as an Arrow IPC file.
func (b *Builder) WriteIPC() ([]byte, error) {
	recs, schema, err := b.Records()
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, r := range recs {
			r.Release()
		}
	}()

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithSchema(schema), ipc.WithAllocator(b.mem))
	if err != nil {
		return nil, err
	}

	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Ramp returns n samples counting up from start, wrapping on overflow.
func Ramp(start int16, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = start + int16(i) //nolint:gosec
	}

	return out
}

// Rows creates n rows; row i holds samples(i).
func Rows(n int, samples func(i int) []int16) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{ReadID: uuid.New(), Samples: samples(i)}
	}

	return rows
}

// Count returns a pointer to c, for Row.Count.
func Count(c uint32) *uint32 {
	return &c
}
