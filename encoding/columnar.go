package encoding

// ColumnarEncoder accumulates values of one column into a byte stream.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, or Finish.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the size in bytes of the encoded values.
	Size() int

	// Reset clears the encoder state so that the next value starts a new sequence.
	// Accumulated bytes are kept.
	Reset()

	// Finish returns buffer resources to the pool. The encoder is unusable afterwards.
	Finish()

	// Write encodes a single value.
	Write(v T)

	// WriteSlice encodes a slice of values.
	WriteSlice(values []T)
}

// ColumnarDecoder decodes a byte stream produced by a ColumnarEncoder.
type ColumnarDecoder[T comparable] interface {
	// Count returns the number of values in data.
	Count(data []byte) (int, error)

	// DecodeInto decodes data into out and returns the number of values in data.
	//
	// At most len(out) values are written. A return value different from len(out)
	// tells the caller that the stream and the buffer disagree.
	DecodeInto(data []byte, out []T) (int, error)
}
