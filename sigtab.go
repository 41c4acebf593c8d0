// Package sigtab reads the signal table of nanopore sequencing files.
//
// A signal table stores raw 16-bit sensor samples, one read per row, in Arrow record
// batches. Rows hold their samples either verbatim or as compressed blobs; this module
// hides the difference and materializes samples into caller-owned buffers.
//
// # Core Features
//
//   - O(1) global row to batch resolution through a lock-free batch size hint
//   - Sample counts without decompression
//   - Multi-row extraction across batch boundaries in input order, repeats allowed
//   - Compressed rows via delta-varint pre-pass and Zstd, S2 or LZ4
//   - Safe for concurrent reads
//
// # Basic Usage
//
//	r, err := sigtab.OpenFile("reads_signal.arrow")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	samples, err := sigtab.ReadSignal(r, 2, 5, 2)
//	if err != nil {
//	    return err
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the signal package. For
// batch-level access, buffer reuse or custom allocators, use the signal package directly.
package sigtab

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/google/uuid"

	"github.com/arloliu/sigtab/signal"
)

// OpenFile opens the signal table stored at path.
//
// The file is closed when the returned reader is closed.
func OpenFile(path string, opts ...signal.Option) (*signal.TableReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	opts = append(opts, signal.WithCloseSource(true))
	r, err := signal.Open(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

// Open reads a signal table from src. The caller keeps ownership of src.
func Open(src ipc.ReadAtSeeker, opts ...signal.Option) (*signal.TableReader, error) {
	return signal.Open(src, opts...)
}

// ReadSignal returns the samples of rows, concatenated in the given order, in a newly
// allocated slice.
//
// Use TableReader.ExtractSamples directly to reuse buffers.
func ReadSignal(r *signal.TableReader, rows ...uint64) ([]int16, error) {
	count, err := r.ExtractSampleCount(rows)
	if err != nil {
		return nil, err
	}

	out := make([]int16, count)
	if err := r.ExtractSamples(rows, out); err != nil {
		return nil, err
	}

	return out, nil
}

// FindRead returns the global row holding the read with the given id.
//
// It scans the read_id column; callers looking up many reads should build their own
// index from TableReader.ReadIDs.
func FindRead(r *signal.TableReader, id uuid.UUID) (uint64, bool) {
	for row, rid := range r.ReadIDs() {
		if rid == id {
			return row, true
		}
	}

	return 0, false
}
