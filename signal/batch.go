package signal

import (
	"fmt"
	"iter"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"

	"github.com/arloliu/sigtab/codec"
	"github.com/arloliu/sigtab/errs"
	"github.com/arloliu/sigtab/internal/pool"
	"github.com/arloliu/sigtab/section"
)

// BinaryColumn is the compressed signal column, either binary or large_binary.
type BinaryColumn interface {
	arrow.Array
	Value(i int) []byte
	ValueLen(i int) int
}

var (
	_ BinaryColumn = (*array.Binary)(nil)
	_ BinaryColumn = (*array.LargeBinary)(nil)
)

// signalStorage is the storage mode of a batch's signal column, resolved once per batch.
type signalStorage interface {
	storedBytes(row int) int
	// extract fills out, whose length is the row's sample count.
	extract(row int, out []int16) error
}

// rawSignal stores samples verbatim in a list<int16> column.
type rawSignal struct {
	list   array.ListLike
	values []int16
}

func (s rawSignal) storedBytes(row int) int {
	start, end := s.list.ValueOffsets(row)
	return int(end-start) * section.SampleSize
}

func (s rawSignal) extract(row int, out []int16) error {
	start, end := s.list.ValueOffsets(row)
	if stored := int(end - start); stored != len(out) {
		return fmt.Errorf("%w: row %d stores %d samples, samples column says %d", errs.ErrCorruptData, row, stored, len(out))
	}
	copy(out, s.values[start:end])

	return nil
}

// compressedSignal stores one encoded blob per row.
type compressedSignal struct {
	blobs BinaryColumn
	codec *codec.SampleCodec
}

func (s compressedSignal) storedBytes(row int) int {
	return s.blobs.ValueLen(row)
}

func (s compressedSignal) extract(row int, out []int16) error {
	n, err := s.codec.Decode(s.blobs.Value(row), out)
	if err != nil {
		return fmt.Errorf("%w: row %d: %w", errs.ErrCorruptData, row, err)
	}
	if n != len(out) {
		return fmt.Errorf("%w: row %d decodes to %d samples, samples column says %d", errs.ErrCorruptData, row, n, len(out))
	}

	return nil
}

// SignalBatch is a read-only view over one record batch of the signal table.
//
// Rows are addressed by their batch-local index. A SignalBatch is owned by its
// TableReader and remains valid until the reader is closed.
type SignalBatch struct {
	index   int
	rec     arrow.Record
	loc     *section.FieldLocations
	mem     memory.Allocator
	readIDs *array.FixedSizeBinary
	samples *array.Uint32
	counts  []uint32
	storage signalStorage
}

// newSignalBatch wraps rec, which must already match loc. The record is retained.
func newSignalBatch(index int, rec arrow.Record, loc *section.FieldLocations, mem memory.Allocator, sc *codec.SampleCodec) (*SignalBatch, error) {
	b := &SignalBatch{index: index, rec: rec, loc: loc, mem: mem}

	readIDs := rec.Column(loc.ReadID)
	if ext, ok := readIDs.(array.ExtensionArray); ok {
		readIDs = ext.Storage()
	}

	var ok bool
	if b.readIDs, ok = readIDs.(*array.FixedSizeBinary); !ok {
		return nil, fmt.Errorf("%w: batch %d: %s column is %T", errs.ErrInvalidColumnType, index, section.ColumnReadID, readIDs)
	}
	if b.samples, ok = rec.Column(loc.Samples).(*array.Uint32); !ok {
		return nil, fmt.Errorf("%w: batch %d: %s column is %T", errs.ErrInvalidColumnType, index, section.ColumnSamples, rec.Column(loc.Samples))
	}
	b.counts = b.samples.Uint32Values()

	signal := rec.Column(loc.Signal)
	if loc.IsCompressed() {
		blobs, ok := signal.(BinaryColumn)
		if !ok || sc == nil {
			return nil, fmt.Errorf("%w: batch %d: %s column is %T", errs.ErrInvalidColumnType, index, section.ColumnSignal, signal)
		}
		b.storage = compressedSignal{blobs: blobs, codec: sc}
	} else {
		list, ok := signal.(array.ListLike)
		if !ok {
			return nil, fmt.Errorf("%w: batch %d: %s column is %T", errs.ErrInvalidColumnType, index, section.ColumnSignal, signal)
		}
		values, ok := list.ListValues().(*array.Int16)
		if !ok {
			return nil, fmt.Errorf("%w: batch %d: %s values are %T", errs.ErrInvalidColumnType, index, section.ColumnSignal, list.ListValues())
		}
		b.storage = rawSignal{list: list, values: values.Int16Values()}
	}

	rec.Retain()

	return b, nil
}

// release drops the batch's reference on its record.
func (b *SignalBatch) release() {
	if b.rec != nil {
		b.rec.Release()
		b.rec = nil
	}
}

// Index returns the position of the batch in the table.
func (b *SignalBatch) Index() int {
	return b.index
}

// NumRows returns the number of rows in the batch.
func (b *SignalBatch) NumRows() int {
	return len(b.counts)
}

// Record returns the underlying record batch. It must not be released by the caller.
func (b *SignalBatch) Record() arrow.Record {
	return b.rec
}

// ReadIDColumn returns the read_id column.
func (b *SignalBatch) ReadIDColumn() *array.FixedSizeBinary {
	return b.readIDs
}

// RawSignalColumn returns the uncompressed signal column, or nil for compressed tables.
func (b *SignalBatch) RawSignalColumn() array.ListLike {
	if raw, ok := b.storage.(rawSignal); ok {
		return raw.list
	}

	return nil
}

// CompressedSignalColumn returns the compressed signal column, or nil for uncompressed tables.
func (b *SignalBatch) CompressedSignalColumn() BinaryColumn {
	if c, ok := b.storage.(compressedSignal); ok {
		return c.blobs
	}

	return nil
}

// SamplesColumn returns the samples column.
func (b *SignalBatch) SamplesColumn() *array.Uint32 {
	return b.samples
}

func (b *SignalBatch) checkRow(row int) error {
	if row < 0 || row >= len(b.counts) {
		return fmt.Errorf("%w: row %d, batch %d has %d rows", errs.ErrOutOfRange, row, b.index, len(b.counts))
	}

	return nil
}

// ReadID returns the read identifier of a row.
func (b *SignalBatch) ReadID(row int) (uuid.UUID, error) {
	if err := b.checkRow(row); err != nil {
		return uuid.Nil, err
	}

	return uuid.FromBytes(b.readIDs.Value(row))
}

// ReadIDs returns an iterator over (row, read id) of the batch.
// Rows whose read_id cannot be parsed are skipped.
func (b *SignalBatch) ReadIDs() iter.Seq2[int, uuid.UUID] {
	return func(yield func(int, uuid.UUID) bool) {
		for row := range b.NumRows() {
			id, err := uuid.FromBytes(b.readIDs.Value(row))
			if err != nil {
				continue
			}
			if !yield(row, id) {
				return
			}
		}
	}
}

// SampleCount returns the number of samples a row expands to.
func (b *SignalBatch) SampleCount(row int) (uint32, error) {
	if err := b.checkRow(row); err != nil {
		return 0, err
	}

	return b.counts[row], nil
}

// SamplesByteCount returns the size in bytes of a row's decompressed samples.
// It never decompresses.
func (b *SignalBatch) SamplesByteCount(row int) (int, error) {
	if err := b.checkRow(row); err != nil {
		return 0, err
	}

	return int(b.counts[row]) * section.SampleSize, nil
}

// StoredByteCount returns the number of bytes used to store a row's signal: the list
// payload for uncompressed tables, the blob length for compressed ones.
func (b *SignalBatch) StoredByteCount(row int) (int, error) {
	if err := b.checkRow(row); err != nil {
		return 0, err
	}

	return b.storage.storedBytes(row), nil
}

// ExtractSignalRow writes the samples of a row into out.
//
// len(out) must equal the row's sample count, otherwise errs.ErrSizeMismatch is
// returned and out is untouched. Stored data that disagrees with the sample count is
// reported as errs.ErrCorruptData; out is zeroed in that case.
func (b *SignalBatch) ExtractSignalRow(row int, out []int16) error {
	if err := b.checkRow(row); err != nil {
		return err
	}

	if want := int(b.counts[row]); len(out) != want {
		return fmt.Errorf("%w: row %d of batch %d has %d samples, buffer holds %d",
			errs.ErrSizeMismatch, row, b.index, want, len(out))
	}

	if err := b.storage.extract(row, out); err != nil {
		clear(out)
		return fmt.Errorf("batch %d: %w", b.index, err)
	}

	return nil
}

// SignalArray materializes the samples of a row as an Arrow array allocated from the
// batch allocator. The caller must release the array.
func (b *SignalBatch) SignalArray(row int) (*array.Int16, error) {
	count, err := b.SampleCount(row)
	if err != nil {
		return nil, err
	}

	samples, cleanup := pool.GetSampleSlice(int(count))
	defer cleanup()

	if err := b.ExtractSignalRow(row, samples); err != nil {
		return nil, err
	}

	bld := array.NewInt16Builder(b.mem)
	defer bld.Release()
	bld.AppendValues(samples, nil)

	return bld.NewInt16Array(), nil
}
