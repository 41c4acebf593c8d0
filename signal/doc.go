// Package signal reads the signal table of a sequencing file.
//
// The signal table stores 16-bit sensor samples, one read per row, split across Arrow
// record batches. Each row holds its samples either verbatim or as a compressed blob;
// the samples column always records how many samples the row expands to.
//
// # Reading Samples
//
// Reads are addressed by global row: a dense, zero-based index over all batches in file
// order. Extraction follows a count-then-fill protocol so callers own every buffer:
//
//	r, err := signal.Open(f)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	rows := []uint64{2, 5, 2}
//	n, err := r.ExtractSampleCount(rows)
//	if err != nil {
//	    return err
//	}
//
//	samples := make([]int16, n)
//	if err := r.ExtractSamples(rows, samples); err != nil {
//	    return err
//	}
//
// # Concurrency
//
// A TableReader is immutable after Open except for an advisory batch size hint updated
// atomically. All read methods are safe for concurrent use as long as each call writes
// into its own buffer.
package signal
