// Package collision tracks read ids and detects reads stored more than once.
package collision

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/arloliu/sigtab/errs"
)

// Tracker maps read ids to the global row that first stored them.
//
// A read id seen again at another row is a collision: the first row is kept and the
// id is recorded in Duplicates.
type Tracker struct {
	rows       map[uuid.UUID]uint64 // read id → first global row
	duplicates []uuid.UUID          // in detection order, each id once
	dupSeen    map[uuid.UUID]struct{}
}

// NewTracker creates a tracker sized for about sizeHint reads.
func NewTracker(sizeHint int) *Tracker {
	return &Tracker{
		rows:    make(map[uuid.UUID]uint64, sizeHint),
		dupSeen: make(map[uuid.UUID]struct{}),
	}
}

// Track records that row stores the read id.
//
// Returns errs.ErrInvalidReadID for the nil UUID. Duplicates are not errors; check
// HasCollision after tracking every row.
func (t *Tracker) Track(id uuid.UUID, row uint64) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: nil uuid at row %d", errs.ErrInvalidReadID, row)
	}

	if _, exists := t.rows[id]; exists {
		if _, seen := t.dupSeen[id]; !seen {
			t.dupSeen[id] = struct{}{}
			t.duplicates = append(t.duplicates, id)
		}

		return nil
	}

	t.rows[id] = row

	return nil
}

// Lookup returns the first row storing the read id.
func (t *Tracker) Lookup(id uuid.UUID) (uint64, bool) {
	row, ok := t.rows[id]
	return row, ok
}

// HasCollision reports whether any read id was tracked at more than one row.
func (t *Tracker) HasCollision() bool {
	return len(t.duplicates) > 0
}

// Duplicates returns the read ids seen at more than one row.
func (t *Tracker) Duplicates() []uuid.UUID {
	return t.duplicates
}

// Count returns the number of distinct read ids.
func (t *Tracker) Count() int {
	return len(t.rows)
}

// Reset clears all tracked ids, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.rows)
	clear(t.dupSeen)
	t.duplicates = t.duplicates[:0]
}
