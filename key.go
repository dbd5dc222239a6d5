package hashrange

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/pkg/errors"
)

// MaxKeyPartLen is the maximum length of a serialized hash or range key.
const MaxKeyPartLen = math.MaxInt32

const prefixLen = 4

var maxPartLen int64 = MaxKeyPartLen

// EncodeKey combines serialized hash and range keys into a composite key.
// An empty rng denotes the default row of a partition.
// It may return an ErrKeyTooLong error.
func EncodeKey(hash, rng []byte) ([]byte, error) {
	return AppendKey(nil, hash, rng)
}

// AppendKey appends the composite key of hash and rng to dst.
// It may return an ErrKeyTooLong error.
func AppendKey(dst, hash, rng []byte) ([]byte, error) {
	if err := checkPartLen("hash", hash); err != nil {
		return dst, err
	}
	if err := checkPartLen("range", rng); err != nil {
		return dst, err
	}

	if need := 2*prefixLen + len(hash) + len(rng); cap(dst)-len(dst) < need {
		grown := make([]byte, len(dst), len(dst)+need)
		copy(grown, dst)
		dst = grown
	}

	var tmp [prefixLen]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(hash)))
	dst = append(dst, tmp[:]...)
	dst = append(dst, hash...)
	binary.BigEndian.PutUint32(tmp[:], uint32(len(rng)))
	dst = append(dst, tmp[:]...)
	dst = append(dst, rng...)
	return dst, nil
}

// SplitKey splits a composite key into its hash and range parts, using the
// embedded length prefixes. The returned slices alias key.
// It may return an ErrMalformedKey error.
func SplitKey(key []byte) (hash, rng []byte, err error) {
	hash, rest, ok := readPart(key)
	if !ok {
		return nil, nil, ErrMalformedKey
	}
	rng, rest, ok = readPart(rest)
	if !ok || len(rest) != 0 {
		return nil, nil, ErrMalformedKey
	}
	return hash, rng, nil
}

func checkPartLen(name string, p []byte) error {
	if int64(len(p)) > maxPartLen {
		return errors.Wrapf(ErrKeyTooLong, "%s key has %d bytes", name, len(p))
	}
	return nil
}

func readPart(p []byte) (part, rest []byte, ok bool) {
	if len(p) < prefixLen {
		return nil, nil, false
	}
	n := uint64(binary.BigEndian.Uint32(p))
	if p = p[prefixLen:]; n > uint64(len(p)) {
		return nil, nil, false
	}
	return p[:n], p[n:], true
}

// scanPart is the lenient version of readPart used for comparisons. Lengths
// are clamped to the available bytes.
func scanPart(p []byte) (part, rest []byte) {
	if len(p) < prefixLen {
		return nil, nil
	}
	n := uint64(binary.BigEndian.Uint32(p))
	if p = p[prefixLen:]; n > uint64(len(p)) {
		n = uint64(len(p))
	}
	return p[:n], p[n:]
}

// --------------------------------------------------------------------

var bufPool sync.Pool

// fetchBuffer returns an empty buffer with a capacity of at least sz.
func fetchBuffer(sz int) []byte {
	if v := bufPool.Get(); v != nil {
		if p := v.([]byte); sz <= cap(p) {
			return p[:0]
		}
	}
	return make([]byte, 0, sz)
}

func releaseBuffer(p []byte) {
	if cap(p) != 0 {
		bufPool.Put(p)
	}
}
