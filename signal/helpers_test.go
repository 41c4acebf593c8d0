package signal

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/sigtab/format"
	"github.com/arloliu/sigtab/internal/signaltest"
)

// buildReader creates a reader over in-memory batches built by b.
func buildReader(t *testing.T, b *signaltest.Builder, opts ...Option) *TableReader {
	t.Helper()

	recs, schema, err := b.Records()
	require.NoError(t, err)
	defer releaseAll(recs)

	r, err := NewTableReader(recs, schema, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, r.Close()) })

	return r
}

// openReader writes b as an IPC file and opens it.
func openReader(t *testing.T, b *signaltest.Builder, opts ...Option) *TableReader {
	t.Helper()

	data, err := b.WriteIPC()
	require.NoError(t, err)

	r, err := Open(bytes.NewReader(data), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, r.Close()) })

	return r
}

func releaseAll(recs []arrow.Record) {
	for _, rec := range recs {
		rec.Release()
	}
}

func newBuilder(t *testing.T, st format.SignalType, opts ...signaltest.Option) *signaltest.Builder {
	t.Helper()

	b, err := signaltest.NewBuilder(st, opts...)
	require.NoError(t, err)

	return b
}

// rowSamples returns the samples sizedTable stores at global row g.
func rowSamples(g int) []int16 {
	return signaltest.Ramp(int16(g*10-50), g%5+1)
}

// sizedTable builds a table whose batches hold the given row counts.
func sizedTable(t *testing.T, st format.SignalType, sizes []int, opts ...signaltest.Option) *signaltest.Builder {
	t.Helper()

	b := newBuilder(t, st, opts...)
	global := 0
	for _, n := range sizes {
		rows := signaltest.Rows(n, func(i int) []int16 { return rowSamples(global + i) })
		b.AddBatch(rows...)
		global += n
	}

	return b
}

var bothModes = []struct {
	name string
	st   format.SignalType
}{
	{"Uncompressed", format.SignalUncompressed},
	{"Compressed", format.SignalCompressed},
}
