package signal

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"sort"
	"sync/atomic"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-kit/log"
	"github.com/google/uuid"

	"github.com/arloliu/sigtab/errs"
	"github.com/arloliu/sigtab/format"
	"github.com/arloliu/sigtab/internal/hash"
	"github.com/arloliu/sigtab/internal/pool"
	"github.com/arloliu/sigtab/section"
)

// TableReader reads the signal table of one file.
//
// Global rows are dense and zero based: batch i holds rows [starts[i], starts[i+1]).
// The reader owns its batches; they stay valid until Close.
type TableReader struct {
	batches []*SignalBatch
	// starts holds prefix sums of batch row counts, len(batches)+1 entries.
	starts []uint64
	loc    *section.FieldLocations
	meta   section.SchemaMetadata
	mem    memory.Allocator
	logger log.Logger

	// batchSizeHint guesses the row count of every non-final batch. It is advisory:
	// every guess is verified against starts, and zero means no guess.
	batchSizeHint atomic.Uint64

	closers []io.Closer
	closed  atomic.Bool
}

// RowInfo describes where a global row is stored.
type RowInfo struct {
	// Batch is the index of the batch holding the row.
	Batch int
	// BatchStart is the global row of the batch's first row.
	BatchStart uint64
	// BatchRow is the row index within the batch.
	BatchRow int
	// ReadID identifies the read stored in the row.
	ReadID uuid.UUID
	// SampleCount is the number of samples of the row.
	SampleCount uint32
	// StoredBytes is the number of bytes used to store the row's signal.
	StoredBytes int
}

// BatchCount returns the number of record batches.
func (r *TableReader) BatchCount() int {
	return len(r.batches)
}

// NumRows returns the total number of rows over all batches.
func (r *TableReader) NumRows() uint64 {
	return r.starts[len(r.starts)-1]
}

// Metadata returns the parsed schema metadata.
func (r *TableReader) Metadata() section.SchemaMetadata {
	return r.meta
}

// FieldLocations returns the column layout shared by all batches.
func (r *TableReader) FieldLocations() *section.FieldLocations {
	return r.loc
}

// SignalType returns the storage mode of the signal column.
func (r *TableReader) SignalType() format.SignalType {
	return r.loc.SignalType
}

// Allocator returns the allocator records and materialized arrays are allocated from.
func (r *TableReader) Allocator() memory.Allocator {
	return r.mem
}

// ReadRecordBatch returns the batch at index i. The batch is shared, not copied.
func (r *TableReader) ReadRecordBatch(i int) (*SignalBatch, error) {
	if i < 0 || i >= len(r.batches) {
		return nil, fmt.Errorf("%w: batch %d, table has %d batches", errs.ErrOutOfRange, i, len(r.batches))
	}

	return r.batches[i], nil
}

// SignalBatchForRow maps a global row to the index of its batch and the global row of
// that batch's first row.
func (r *TableReader) SignalBatchForRow(row uint64) (int, uint64, error) {
	total := r.NumRows()
	if row >= total {
		return 0, 0, fmt.Errorf("%w: row %d, table has %d rows", errs.ErrOutOfRange, row, total)
	}

	hint := r.batchSizeHint.Load()
	if hint != 0 {
		if c := row / hint; c < uint64(len(r.batches)) && r.starts[c] <= row && row < r.starts[c+1] {
			return int(c), r.starts[c], nil
		}
	}

	// first batch whose end is past row; empty batches are skipped naturally
	idx := sort.Search(len(r.batches), func(i int) bool {
		return r.starts[i+1] > row
	})
	r.refreshHint(hint)

	return idx, r.starts[idx], nil
}

// refreshHint replaces a missing or failed hint with the first batch's row count.
// A hint that already equals it is kept: the miss came from an irregular batch.
func (r *TableReader) refreshHint(seen uint64) {
	std := uint64(r.batches[0].NumRows())
	if std == 0 || seen == std {
		return
	}

	r.batchSizeHint.CompareAndSwap(seen, std)
}

// locate resolves a global row to its batch and batch-local row.
func (r *TableReader) locate(row uint64) (*SignalBatch, int, error) {
	idx, start, err := r.SignalBatchForRow(row)
	if err != nil {
		return nil, 0, err
	}

	return r.batches[idx], int(row - start), nil
}

// ExtractSampleCount returns the total number of samples of rows, without decompressing.
//
// Rows may repeat and come in any order. The first invalid row aborts the call.
func (r *TableReader) ExtractSampleCount(rows []uint64) (uint64, error) {
	var total uint64
	for _, row := range rows {
		b, local, err := r.locate(row)
		if err != nil {
			return 0, err
		}
		total += uint64(b.counts[local])
	}

	return total, nil
}

// ExtractSamples writes the samples of rows into out, back to back in input order.
//
// len(out) must equal ExtractSampleCount(rows), otherwise errs.ErrSizeMismatch is
// returned before anything is written. If any row fails to extract, out is zeroed and
// the error is returned; a partially filled buffer is never reported as success.
func (r *TableReader) ExtractSamples(rows []uint64, out []int16) error {
	want, err := r.ExtractSampleCount(rows)
	if err != nil {
		return err
	}
	if uint64(len(out)) != want {
		return fmt.Errorf("%w: rows need %d samples, buffer holds %d", errs.ErrSizeMismatch, want, len(out))
	}

	offset := 0
	for i, row := range rows {
		b, local, err := r.locate(row)
		if err != nil {
			clear(out)
			return err
		}

		n := int(b.counts[local])
		if err := b.ExtractSignalRow(local, out[offset:offset+n]); err != nil {
			clear(out)
			return fmt.Errorf("rows[%d] (row %d): %w", i, row, err)
		}
		offset += n
	}

	return nil
}

// SignalRowInfo describes where a global row is stored and how large it is.
func (r *TableReader) SignalRowInfo(row uint64) (RowInfo, error) {
	idx, start, err := r.SignalBatchForRow(row)
	if err != nil {
		return RowInfo{}, err
	}

	b := r.batches[idx]
	local := int(row - start)

	id, err := b.ReadID(local)
	if err != nil {
		return RowInfo{}, fmt.Errorf("%w: row %d: %w", errs.ErrCorruptData, row, err)
	}

	return RowInfo{
		Batch:       idx,
		BatchStart:  start,
		BatchRow:    local,
		ReadID:      id,
		SampleCount: b.counts[local],
		StoredBytes: b.storage.storedBytes(local),
	}, nil
}

// ReadIDs returns an iterator over (global row, read id) of the whole table.
func (r *TableReader) ReadIDs() iter.Seq2[uint64, uuid.UUID] {
	return func(yield func(uint64, uuid.UUID) bool) {
		for i, b := range r.batches {
			for local, id := range b.ReadIDs() {
				if !yield(r.starts[i]+uint64(local), id) {
					return
				}
			}
		}
	}
}

// Checksum returns the xxHash64 digest of the samples of rows, concatenated in input
// order and serialized little-endian.
//
// The digest does not depend on the storage mode, so a raw and a compressed table
// holding the same samples have equal checksums.
func (r *TableReader) Checksum(rows []uint64) (uint64, error) {
	digest := hash.NewSampleDigest()

	for _, row := range rows {
		b, local, err := r.locate(row)
		if err != nil {
			return 0, err
		}

		samples, cleanup := pool.GetSampleSlice(int(b.counts[local]))
		err = b.ExtractSignalRow(local, samples)
		if err == nil {
			digest.WriteSamples(samples)
		}
		cleanup()

		if err != nil {
			return 0, fmt.Errorf("row %d: %w", row, err)
		}
	}

	return digest.Sum64(), nil
}

// Close releases all batches and closes the underlying file reader and, when owned,
// the source. Batches must not be used after Close. Calling Close twice is a no-op.
func (r *TableReader) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	for _, b := range r.batches {
		b.release()
	}

	var errList []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}
