package hashrange

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Codec converts typed hash keys, range keys or values to and from bytes.
//
// Range key codecs must preserve the intended order of R under bytewise
// comparison of the encoded output.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(p []byte) (T, error)
}

// Bytes is a pass-through codec for raw byte slices.
type Bytes struct{}

// Encode implements Codec.
func (Bytes) Encode(v []byte) ([]byte, error) { return v, nil }

// Decode implements Codec. The input is returned as is.
func (Bytes) Decode(p []byte) ([]byte, error) { return p, nil }

// String encodes strings as their raw bytes.
type String struct{}

// Encode implements Codec.
func (String) Encode(v string) ([]byte, error) { return []byte(v), nil }

// Decode implements Codec.
func (String) Decode(p []byte) (string, error) { return string(p), nil }

// Uint64 encodes unsigned integers as 8 big-endian bytes, preserving their order.
type Uint64 struct{}

// Encode implements Codec.
func (Uint64) Encode(v uint64) ([]byte, error) {
	p := make([]byte, 8)
	binary.BigEndian.PutUint64(p, v)
	return p, nil
}

// Decode implements Codec.
func (Uint64) Decode(p []byte) (uint64, error) {
	if len(p) != 8 {
		return 0, errors.Errorf("hashrange: uint64 codec expects 8 bytes, got %d", len(p))
	}
	return binary.BigEndian.Uint64(p), nil
}

// Int64 encodes signed integers as 8 big-endian bytes with the sign bit
// flipped, so negative numbers sort before positive ones.
type Int64 struct{}

// Encode implements Codec.
func (Int64) Encode(v int64) ([]byte, error) {
	return Uint64{}.Encode(uint64(v) ^ (1 << 63))
}

// Decode implements Codec.
func (Int64) Decode(p []byte) (int64, error) {
	u, err := Uint64{}.Decode(p)
	if err != nil {
		return 0, errors.Wrap(err, "hashrange: int64")
	}
	return int64(u ^ (1 << 63)), nil
}

// Gob encodes arbitrary values using encoding/gob. The output is not order
// preserving, use it for values only.
type Gob[T any] struct{}

// Encode implements Codec.
func (Gob[T]) Encode(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, errors.Wrap(err, "hashrange: gob encode")
	}
	return buf.Bytes(), nil
}

// Decode implements Codec.
func (Gob[T]) Decode(p []byte) (T, error) {
	var v T
	if err := gob.NewDecoder(bytes.NewReader(p)).Decode(&v); err != nil {
		return v, errors.Wrap(err, "hashrange: gob decode")
	}
	return v, nil
}

// Snappy wraps a codec and compresses its output with snappy. The output is
// not order preserving, use it for values only.
func Snappy[T any](inner Codec[T]) Codec[T] {
	return snappyCodec[T]{inner: inner}
}

type snappyCodec[T any] struct {
	inner Codec[T]
}

func (c snappyCodec[T]) Encode(v T) ([]byte, error) {
	plain, err := c.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, plain), nil
}

func (c snappyCodec[T]) Decode(p []byte) (T, error) {
	plain, err := snappy.Decode(nil, p)
	if err != nil {
		var zero T
		return zero, errors.Wrap(err, "hashrange: snappy decode")
	}
	return c.inner.Decode(plain)
}
