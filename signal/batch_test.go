package signal

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/sigtab/errs"
	"github.com/arloliu/sigtab/format"
	"github.com/arloliu/sigtab/internal/signaltest"
)

func TestSignalBatch_Accessors(t *testing.T) {
	for _, mode := range bothModes {
		t.Run(mode.name, func(t *testing.T) {
			r := buildReader(t, sizedTable(t, mode.st, []int{4, 4}))

			b, err := r.ReadRecordBatch(1)
			require.NoError(t, err)
			require.Equal(t, 1, b.Index())
			require.Equal(t, 4, b.NumRows())
			require.NotNil(t, b.Record())
			require.Equal(t, 4, b.ReadIDColumn().Len())
			require.Equal(t, 4, b.SamplesColumn().Len())

			if mode.st == format.SignalCompressed {
				require.Nil(t, b.RawSignalColumn())
				require.NotNil(t, b.CompressedSignalColumn())
			} else {
				require.NotNil(t, b.RawSignalColumn())
				require.Nil(t, b.CompressedSignalColumn())
			}

			for row := range b.NumRows() {
				want := rowSamples(4 + row)

				count, err := b.SampleCount(row)
				require.NoError(t, err)
				require.Equal(t, uint32(len(want)), count)

				size, err := b.SamplesByteCount(row)
				require.NoError(t, err)
				require.Equal(t, 2*len(want), size)

				stored, err := b.StoredByteCount(row)
				require.NoError(t, err)
				if mode.st == format.SignalUncompressed {
					require.Equal(t, size, stored)
				} else {
					require.Equal(t, b.CompressedSignalColumn().ValueLen(row), stored)
				}

				out := make([]int16, count)
				require.NoError(t, b.ExtractSignalRow(row, out))
				require.Equal(t, want, out)
			}
		})
	}
}

func TestSignalBatch_RowBounds(t *testing.T) {
	r := buildReader(t, sizedTable(t, format.SignalCompressed, []int{3}))
	b, err := r.ReadRecordBatch(0)
	require.NoError(t, err)

	for _, row := range []int{-1, 3, 100} {
		_, err = b.SampleCount(row)
		require.ErrorIs(t, err, errs.ErrOutOfRange)

		_, err = b.SamplesByteCount(row)
		require.ErrorIs(t, err, errs.ErrOutOfRange)

		_, err = b.StoredByteCount(row)
		require.ErrorIs(t, err, errs.ErrOutOfRange)

		_, err = b.ReadID(row)
		require.ErrorIs(t, err, errs.ErrOutOfRange)

		require.ErrorIs(t, b.ExtractSignalRow(row, nil), errs.ErrOutOfRange)
	}
}

func TestSignalBatch_ReadIDs(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	b := newBuilder(t, format.SignalUncompressed)
	b.AddBatch(
		signaltest.Row{ReadID: ids[0], Samples: []int16{1}},
		signaltest.Row{ReadID: ids[1], Samples: []int16{2, 3}},
		signaltest.Row{ReadID: ids[2]},
	)
	r := buildReader(t, b)

	batch, err := r.ReadRecordBatch(0)
	require.NoError(t, err)

	for row, want := range ids {
		got, err := batch.ReadID(row)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	var seen []uuid.UUID
	for row, id := range batch.ReadIDs() {
		require.Equal(t, ids[row], id)
		seen = append(seen, id)
	}
	require.Equal(t, ids, seen)
}

func TestSignalBatch_ExtractSignalRow_SizeMismatch(t *testing.T) {
	for _, mode := range bothModes {
		t.Run(mode.name, func(t *testing.T) {
			b := newBuilder(t, mode.st)
			b.AddBatch(signaltest.Row{Samples: signaltest.Ramp(0, 10)})
			r := buildReader(t, b)

			batch, err := r.ReadRecordBatch(0)
			require.NoError(t, err)

			for _, n := range []int{0, 9, 11} {
				out := make([]int16, n)
				for i := range out {
					out[i] = -7
				}

				err := batch.ExtractSignalRow(0, out)
				require.ErrorIs(t, err, errs.ErrSizeMismatch)
				for _, v := range out {
					require.Equal(t, int16(-7), v, "buffer must be untouched")
				}
			}
		})
	}
}

func TestSignalBatch_ExtractSignalRow_Corrupt(t *testing.T) {
	t.Run("Raw list shorter than count", func(t *testing.T) {
		b := newBuilder(t, format.SignalUncompressed)
		b.AddBatch(signaltest.Row{Samples: []int16{1, 2, 3}, Count: signaltest.Count(5)})
		r := buildReader(t, b)

		batch, err := r.ReadRecordBatch(0)
		require.NoError(t, err)

		out := make([]int16, 5)
		require.ErrorIs(t, batch.ExtractSignalRow(0, out), errs.ErrCorruptData)
		require.Equal(t, make([]int16, 5), out)
	})

	t.Run("Compressed blob holds fewer samples", func(t *testing.T) {
		b := newBuilder(t, format.SignalCompressed)
		b.AddBatch(signaltest.Row{Samples: []int16{1, 2, 3}, Count: signaltest.Count(4)})
		r := buildReader(t, b)

		batch, err := r.ReadRecordBatch(0)
		require.NoError(t, err)

		out := make([]int16, 4)
		require.ErrorIs(t, batch.ExtractSignalRow(0, out), errs.ErrCorruptData)
		require.Equal(t, make([]int16, 4), out)
	})

	t.Run("Compressed blob holds more samples", func(t *testing.T) {
		b := newBuilder(t, format.SignalCompressed)
		b.AddBatch(signaltest.Row{Samples: signaltest.Ramp(5, 20), Count: signaltest.Count(8)})
		r := buildReader(t, b)

		batch, err := r.ReadRecordBatch(0)
		require.NoError(t, err)

		require.ErrorIs(t, batch.ExtractSignalRow(0, make([]int16, 8)), errs.ErrCorruptData)
	})

	t.Run("Undecodable blob", func(t *testing.T) {
		b := newBuilder(t, format.SignalCompressed)
		b.AddBatch(signaltest.Row{Blob: []byte("definitely not zstd"), Count: signaltest.Count(3)})
		r := buildReader(t, b)

		batch, err := r.ReadRecordBatch(0)
		require.NoError(t, err)

		require.ErrorIs(t, batch.ExtractSignalRow(0, make([]int16, 3)), errs.ErrCorruptData)
	})
}

func TestSignalBatch_SignalArray(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	for _, mode := range bothModes {
		t.Run(mode.name, func(t *testing.T) {
			b := sizedTable(t, mode.st, []int{5}, signaltest.WithAllocator(mem))
			recs, schema, err := b.Records()
			require.NoError(t, err)

			r, err := NewTableReader(recs, schema, WithAllocator(mem))
			releaseAll(recs)
			require.NoError(t, err)

			batch, err := r.ReadRecordBatch(0)
			require.NoError(t, err)

			arr, err := batch.SignalArray(3)
			require.NoError(t, err)
			require.Equal(t, rowSamples(3), arr.Int16Values())
			arr.Release()

			require.NoError(t, r.Close())
		})
	}
}

func TestSignalBatch_RawRoundTripIsVerbatim(t *testing.T) {
	samples := []int16{-32768, 32767, 0, -1, 1, 32767, -32768, 12345}

	b := newBuilder(t, format.SignalUncompressed, signaltest.WithSmallOffsets())
	b.AddBatch(signaltest.Row{Samples: samples})
	r := buildReader(t, b)

	batch, err := r.ReadRecordBatch(0)
	require.NoError(t, err)

	out := make([]int16, len(samples))
	require.NoError(t, batch.ExtractSignalRow(0, out))
	require.Equal(t, samples, out)
}
