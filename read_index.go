package sigtab

import (
	"github.com/google/uuid"

	"github.com/arloliu/sigtab/internal/collision"
	"github.com/arloliu/sigtab/signal"
)

// ReadIndex maps read ids to global rows of one table.
//
// A ReadIndex is immutable once built and safe for concurrent lookups.
type ReadIndex struct {
	tracker *collision.Tracker
}

// IndexReads scans the read_id column of r and builds a ReadIndex.
//
// Reads stored at several rows resolve to their first row and are listed by
// ReadIndex.Duplicates. Returns errs.ErrInvalidReadID if a row stores the nil UUID.
func IndexReads(r *signal.TableReader) (*ReadIndex, error) {
	tracker := collision.NewTracker(int(r.NumRows())) //nolint:gosec

	for row, id := range r.ReadIDs() {
		if err := tracker.Track(id, row); err != nil {
			return nil, err
		}
	}

	return &ReadIndex{tracker: tracker}, nil
}

// Lookup returns the global row storing the read.
func (x *ReadIndex) Lookup(id uuid.UUID) (uint64, bool) {
	return x.tracker.Lookup(id)
}

// Len returns the number of distinct reads.
func (x *ReadIndex) Len() int {
	return x.tracker.Count()
}

// Duplicates returns the reads stored at more than one row.
func (x *ReadIndex) Duplicates() []uuid.UUID {
	return x.tracker.Duplicates()
}
