package sigtab

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/sigtab/errs"
	"github.com/arloliu/sigtab/format"
	"github.com/arloliu/sigtab/internal/signaltest"
	"github.com/arloliu/sigtab/signal"
)

func writeTable(t *testing.T, st format.SignalType, ids []uuid.UUID) []byte {
	t.Helper()

	b, err := signaltest.NewBuilder(st)
	require.NoError(t, err)

	rows := make([]signaltest.Row, len(ids))
	for i, id := range ids {
		rows[i] = signaltest.Row{ReadID: id, Samples: signaltest.Ramp(int16(i*100), i+1)}
	}
	b.AddBatch(rows[:2]...)
	b.AddBatch(rows[2:]...)

	data, err := b.WriteIPC()
	require.NoError(t, err)

	return data
}

func TestOpenFile(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	path := filepath.Join(t.TempDir(), "signal.arrow")
	require.NoError(t, os.WriteFile(path, writeTable(t, format.SignalCompressed, ids), 0o600))

	r, err := OpenFile(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()

	require.Equal(t, uint64(3), r.NumRows())
	require.Equal(t, 2, r.BatchCount())

	samples, err := ReadSignal(r, 2, 0)
	require.NoError(t, err)
	require.Equal(t, append(signaltest.Ramp(200, 3), signaltest.Ramp(0, 1)...), samples)
}

func TestOpenFile_Errors(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.arrow"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "garbage.arrow")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, err = OpenFile(path)
	require.Error(t, err)
}

func TestReadSignal(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	r, err := Open(bytes.NewReader(writeTable(t, format.SignalUncompressed, ids)), signal.WithBatchSizeHint(2))
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()

	samples, err := ReadSignal(r, 1, 1)
	require.NoError(t, err)
	require.Equal(t, []int16{100, 101, 100, 101}, samples)

	empty, err := ReadSignal(r)
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = ReadSignal(r, 3)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestFindRead(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	r, err := Open(bytes.NewReader(writeTable(t, format.SignalCompressed, ids)))
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()

	for want, id := range ids {
		row, ok := FindRead(r, id)
		require.True(t, ok)
		require.Equal(t, uint64(want), row)
	}

	_, ok := FindRead(r, uuid.New())
	require.False(t, ok)
}

func TestIndexReads(t *testing.T) {
	dup := uuid.New()
	ids := []uuid.UUID{uuid.New(), dup, uuid.New(), dup}

	r, err := Open(bytes.NewReader(writeTable(t, format.SignalUncompressed, ids)))
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Close()) }()

	idx, err := IndexReads(r)
	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())
	require.Equal(t, []uuid.UUID{dup}, idx.Duplicates())

	row, ok := idx.Lookup(dup)
	require.True(t, ok)
	require.Equal(t, uint64(1), row)

	row, ok = idx.Lookup(ids[2])
	require.True(t, ok)
	require.Equal(t, uint64(2), row)

	_, ok = idx.Lookup(uuid.New())
	require.False(t, ok)
}
