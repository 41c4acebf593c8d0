package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sigtab/errs"
)

func encodeSamples(t *testing.T, samples []int16) []byte {
	t.Helper()

	enc := NewSampleDeltaEncoder()
	defer enc.Finish()

	enc.WriteSlice(samples)
	out := make([]byte, enc.Size())
	copy(out, enc.Bytes())

	return out
}

func TestSampleDeltaEncoder_Sizes(t *testing.T) {
	tests := []struct {
		name     string
		samples  []int16
		wantSize int
	}{
		{"empty", nil, 0},
		{"zero", []int16{0}, 1},
		{"small steps", []int16{10, 11, 9, 12, 12}, 5},
		{"two byte delta", []int16{1000}, 2},
		{"full scale swing", []int16{math.MaxInt16, math.MinInt16}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeSamples(t, tt.samples)
			require.Len(t, data, tt.wantSize)
		})
	}
}

func TestSampleDeltaEncoder_WriteMatchesWriteSlice(t *testing.T) {
	samples := []int16{512, 515, 509, -3, 0, 32767, -32768, 7}

	single := NewSampleDeltaEncoder()
	defer single.Finish()
	for _, s := range samples {
		single.Write(s)
	}

	require.Equal(t, len(samples), single.Len())
	require.Equal(t, encodeSamples(t, samples), single.Bytes())
}

func TestSampleDeltaEncoder_Reset(t *testing.T) {
	enc := NewSampleDeltaEncoder()
	defer enc.Finish()

	enc.WriteSlice([]int16{100, 101})
	enc.Reset()
	enc.WriteSlice([]int16{100})

	out := make([]int16, 3)
	n, err := NewSampleDeltaDecoder().DecodeInto(enc.Bytes(), out)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	// After Reset the third sample is encoded relative to zero, so a plain decode
	// continues from the previous value.
	require.Equal(t, []int16{100, 101, 201}, out)
}

func TestSampleDeltaEncoder_FinishPanicsOnWrite(t *testing.T) {
	enc := NewSampleDeltaEncoder()
	enc.Finish()

	require.Panics(t, func() { enc.Write(1) })
	require.Panics(t, func() { enc.WriteSlice([]int16{1}) })
}

func TestSampleDeltaDecoder_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		samples []int16
	}{
		{"single", []int16{-7}},
		{"extremes", []int16{math.MinInt16, math.MaxInt16, math.MinInt16, 0}},
		{"sawtooth", func() []int16 {
			s := make([]int16, 4096)
			for i := range s {
				s[i] = int16(i%200 - 100)
			}

			return s
		}()},
	}

	dec := NewSampleDeltaDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeSamples(t, tt.samples)

			count, err := dec.Count(data)
			require.NoError(t, err)
			require.Equal(t, len(tt.samples), count)

			out := make([]int16, len(tt.samples))
			n, err := dec.DecodeInto(data, out)
			require.NoError(t, err)
			require.Equal(t, len(tt.samples), n)
			require.Equal(t, tt.samples, out)

			appended, err := dec.AppendSamples([]int16{1}, data)
			require.NoError(t, err)
			require.Equal(t, append([]int16{1}, tt.samples...), appended)
		})
	}
}

func TestSampleDeltaDecoder_CountMismatch(t *testing.T) {
	data := encodeSamples(t, []int16{1, 2, 3, 4, 5})
	dec := NewSampleDeltaDecoder()

	t.Run("buffer too small", func(t *testing.T) {
		out := make([]int16, 3)
		n, err := dec.DecodeInto(data, out)
		require.NoError(t, err)
		require.Equal(t, 5, n)
		require.Equal(t, []int16{1, 2, 3}, out)
	})

	t.Run("buffer too large", func(t *testing.T) {
		out := make([]int16, 8)
		n, err := dec.DecodeInto(data, out)
		require.NoError(t, err)
		require.Equal(t, 5, n)
	})
}

func TestSampleDeltaDecoder_Errors(t *testing.T) {
	dec := NewSampleDeltaDecoder()

	t.Run("truncated varint", func(t *testing.T) {
		data := []byte{0x02, 0x80}
		_, err := dec.Count(data)
		require.ErrorIs(t, err, errs.ErrTruncatedSamples)

		_, err = dec.DecodeInto(data, make([]int16, 2))
		require.ErrorIs(t, err, errs.ErrTruncatedSamples)
	})

	t.Run("overflowing sample", func(t *testing.T) {
		// two +32767 steps overflow int16
		data := encodeSamples(t, []int16{math.MaxInt16})
		data = append(data, data...)
		_, err := dec.DecodeInto(data, make([]int16, 2))
		require.ErrorIs(t, err, errs.ErrSampleOverflow)
	})

	t.Run("append keeps dst on error", func(t *testing.T) {
		dst := []int16{9}
		got, err := dec.AppendSamples(dst, []byte{0xFF})
		require.Error(t, err)
		require.Equal(t, []int16{9}, got)
	})
}
