package signal

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/go-kit/log/level"

	"github.com/arloliu/sigtab/codec"
	"github.com/arloliu/sigtab/section"
)

// Open reads a signal table from an Arrow IPC file.
//
// The schema and metadata are validated once, then every record batch is loaded in
// file order. Schema problems are reported as errors wrapping errs.ErrSchema.
func Open(src ipc.ReadAtSeeker, opts ...Option) (*TableReader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	fr, err := ipc.NewFileReader(src, ipc.WithAllocator(cfg.mem))
	if err != nil {
		return nil, fmt.Errorf("open arrow file: %w", err)
	}

	recs := make([]arrow.Record, 0, fr.NumRecords())
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	for i := range fr.NumRecords() {
		rec, err := fr.RecordAt(i)
		if err != nil {
			_ = fr.Close()
			return nil, fmt.Errorf("read record batch %d: %w", i, err)
		}
		recs = append(recs, rec)
	}

	r, err := newTableReader(recs, fr.Schema(), cfg)
	if err != nil {
		_ = fr.Close()
		return nil, err
	}

	r.closers = append(r.closers, fr)
	if c, ok := src.(io.Closer); ok && cfg.closeSource {
		r.closers = append(r.closers, c)
	}

	return r, nil
}

// NewTableReader builds a reader over record batches that share schema.
//
// Every batch is retained; the caller keeps its own references and may release them
// at any time.
func NewTableReader(batches []arrow.Record, schema *arrow.Schema, opts ...Option) (*TableReader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newTableReader(batches, schema, cfg)
}

func newTableReader(recs []arrow.Record, schema *arrow.Schema, cfg *config) (*TableReader, error) {
	loc, err := section.ParseFieldLocations(schema)
	if err != nil {
		return nil, err
	}

	meta, err := section.ParseSchemaMetadata(schema.Metadata())
	if err != nil {
		return nil, err
	}

	var sc *codec.SampleCodec
	if loc.IsCompressed() {
		if sc, err = codec.New(loc.Compression); err != nil {
			return nil, err
		}
	}

	r := &TableReader{
		batches: make([]*SignalBatch, 0, len(recs)),
		starts:  make([]uint64, 1, len(recs)+1),
		loc:     loc,
		meta:    meta,
		mem:     cfg.mem,
		logger:  cfg.logger,
	}

	for i, rec := range recs {
		if err := loc.CheckBatchSchema(rec.Schema()); err != nil {
			r.releaseBatches()
			return nil, fmt.Errorf("batch %d: %w", i, err)
		}

		b, err := newSignalBatch(i, rec, loc, cfg.mem, sc)
		if err != nil {
			r.releaseBatches()
			return nil, err
		}

		r.batches = append(r.batches, b)
		r.starts = append(r.starts, r.starts[i]+uint64(b.NumRows()))
	}

	r.batchSizeHint.Store(cfg.batchSizeHint)
	r.logOpen()

	return r, nil
}

func (r *TableReader) releaseBatches() {
	for _, b := range r.batches {
		b.release()
	}
	r.batches = nil
}

func (r *TableReader) logOpen() {
	level.Debug(r.logger).Log("msg", "opened signal table",
		"batches", len(r.batches),
		"rows", r.NumRows(),
		"signal_type", r.loc.SignalType,
		"compression", r.loc.Compression,
		"version", r.meta.Version,
	)

	if len(r.batches) < 2 {
		return
	}

	std := r.batches[0].NumRows()
	for _, b := range r.batches[1 : len(r.batches)-1] {
		if b.NumRows() != std {
			level.Warn(r.logger).Log("msg", "irregular signal batch size",
				"batch", b.Index(), "rows", b.NumRows(), "expected", std)
		}
	}
}
