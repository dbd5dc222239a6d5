package hashrange

import (
	"github.com/pkg/errors"
)

// Table is a hash-partitioned, range-ordered table. Rows are addressed by a
// hash key and an optional range key. Rows sharing a hash key form a
// partition, ordered by range key.
//
// Tables are not safe for concurrent use beyond the guarantees of the
// underlying store.
type Table[H, R, V any] struct {
	store Store
	cmp   KeyComparator

	hashCodec  Codec[H]
	rangeCodec Codec[R]
	valueCodec Codec[V]
}

// Open opens (or creates) a table at path.
// It may return an *OpenError.
func Open[H, R, V any](path string, hashCodec Codec[H], rangeCodec Codec[R], valueCodec Codec[V], o *Options) (*Table[H, R, V], error) {
	o = o.norm()

	store, err := OpenStore(path, o)
	if err != nil {
		return nil, err
	}

	t := NewTable(store, hashCodec, rangeCodec, valueCodec)
	t.cmp = o.Comparator
	return t, nil
}

// NewTable wraps a store, which must have been opened with DefaultComparator.
// The table takes ownership of the store.
func NewTable[H, R, V any](store Store, hashCodec Codec[H], rangeCodec Codec[R], valueCodec Codec[V]) *Table[H, R, V] {
	return &Table[H, R, V]{
		store:      store,
		cmp:        DefaultComparator,
		hashCodec:  hashCodec,
		rangeCodec: rangeCodec,
		valueCodec: valueCodec,
	}
}

// Put stores a value under hashKey and rangeKey.
func (t *Table[H, R, V]) Put(hashKey H, rangeKey R, value V) error {
	rng, err := t.encodeRange(rangeKey)
	if err != nil {
		return err
	}
	return t.put(hashKey, rng, value)
}

// PutDefault stores the default row of a partition, which has no range key
// and sorts before all other rows of the partition.
func (t *Table[H, R, V]) PutDefault(hashKey H, value V) error {
	return t.put(hashKey, nil, value)
}

// Get retrieves the value stored under hashKey and rangeKey. A missing row
// is reported as ok == false and is never an error.
func (t *Table[H, R, V]) Get(hashKey H, rangeKey R) (value V, ok bool, err error) {
	rng, err := t.encodeRange(rangeKey)
	if err != nil {
		return value, false, err
	}
	return t.get(hashKey, rng)
}

// GetDefault retrieves the default row of a partition.
func (t *Table[H, R, V]) GetDefault(hashKey H) (value V, ok bool, err error) {
	return t.get(hashKey, nil)
}

// Delete removes the row stored under hashKey and rangeKey. Deleting a
// missing row is a no-op.
func (t *Table[H, R, V]) Delete(hashKey H, rangeKey R) error {
	rng, err := t.encodeRange(rangeKey)
	if err != nil {
		return err
	}
	return t.delete(hashKey, rng)
}

// DeleteDefault removes the default row of a partition.
func (t *Table[H, R, V]) DeleteDefault(hashKey H) error {
	return t.delete(hashKey, nil)
}

// Range returns an iterator over all rows of the partition, in ascending
// range key order, starting with the default row.
func (t *Table[H, R, V]) Range(hashKey H) (*Iterator[H, R, V], error) {
	if t.store == nil {
		return nil, ErrClosed
	}

	from, err := t.compositeKey(nil, hashKey, nil)
	if err != nil {
		return nil, err
	}
	return t.newIterator(from, nil), nil
}

// RangeBetween returns an iterator over the rows of the partition with range
// keys between fromRangeKey and toRangeKey, both inclusive.
func (t *Table[H, R, V]) RangeBetween(hashKey H, fromRangeKey, toRangeKey R) (*Iterator[H, R, V], error) {
	if t.store == nil {
		return nil, ErrClosed
	}

	hash, err := t.encodeHash(hashKey)
	if err != nil {
		return nil, err
	}
	fromRng, err := t.encodeRange(fromRangeKey)
	if err != nil {
		return nil, err
	}
	toRng, err := t.encodeRange(toRangeKey)
	if err != nil {
		return nil, err
	}

	from, err := EncodeKey(hash, fromRng)
	if err != nil {
		return nil, err
	}
	to, err := EncodeKey(hash, toRng)
	if err != nil {
		return nil, err
	}
	return t.newIterator(from, to), nil
}

// DeletePartition removes all rows of a partition and returns the number of
// removed rows.
func (t *Table[H, R, V]) DeletePartition(hashKey H) (int, error) {
	iter, err := t.Range(hashKey)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	n := 0
	for iter.advance() {
		if err := iter.Remove(); err != nil {
			return n, err
		}
		n++
	}
	return n, iter.Err()
}

// Close releases the underlying store. All iterators must be closed first.
// The table must not be used after this method is called.
func (t *Table[H, R, V]) Close() error {
	if t.store == nil {
		return nil
	}

	err := t.store.Close()
	t.store = nil
	return err
}

func (t *Table[H, R, V]) put(hashKey H, rng []byte, value V) error {
	if t.store == nil {
		return ErrClosed
	}

	key, err := t.compositeKey(nil, hashKey, rng)
	if err != nil {
		return err
	}
	val, err := t.valueCodec.Encode(value)
	if err != nil {
		return errors.Wrap(err, "hashrange: encode value")
	}
	return t.store.Put(key, val)
}

func (t *Table[H, R, V]) get(hashKey H, rng []byte) (value V, ok bool, err error) {
	if t.store == nil {
		return value, false, ErrClosed
	}

	key, err := t.compositeKey(fetchBuffer(64), hashKey, rng)
	if err != nil {
		releaseBuffer(key)
		return value, false, err
	}

	raw, ok, err := t.store.Get(key)
	releaseBuffer(key)
	if err != nil || !ok {
		return value, false, err
	}

	if value, err = t.valueCodec.Decode(raw); err != nil {
		return value, false, errors.Wrap(err, "hashrange: decode value")
	}
	return value, true, nil
}

func (t *Table[H, R, V]) delete(hashKey H, rng []byte) error {
	if t.store == nil {
		return ErrClosed
	}

	key, err := t.compositeKey(fetchBuffer(64), hashKey, rng)
	if err == nil {
		err = t.store.Delete(key)
	}
	releaseBuffer(key)
	return err
}

func (t *Table[H, R, V]) encodeHash(hashKey H) ([]byte, error) {
	hash, err := t.hashCodec.Encode(hashKey)
	if err != nil {
		return nil, errors.Wrap(err, "hashrange: encode hash key")
	}
	return hash, nil
}

func (t *Table[H, R, V]) encodeRange(rangeKey R) ([]byte, error) {
	rng, err := t.rangeCodec.Encode(rangeKey)
	if err != nil {
		return nil, errors.Wrap(err, "hashrange: encode range key")
	}
	return rng, nil
}

func (t *Table[H, R, V]) compositeKey(dst []byte, hashKey H, rng []byte) ([]byte, error) {
	hash, err := t.encodeHash(hashKey)
	if err != nil {
		return dst, err
	}
	return AppendKey(dst, hash, rng)
}

func (t *Table[H, R, V]) decodeRow(key, val []byte) (row Row[H, R, V], err error) {
	hash, rng, err := SplitKey(key)
	if err != nil {
		return row, err
	}

	if row.HashKey, err = t.hashCodec.Decode(hash); err != nil {
		return row, errors.Wrap(err, "hashrange: decode hash key")
	}
	if len(rng) != 0 {
		if row.RangeKey, err = t.rangeCodec.Decode(rng); err != nil {
			return row, errors.Wrap(err, "hashrange: decode range key")
		}
		row.ranged = true
	}
	if row.Value, err = t.valueCodec.Decode(val); err != nil {
		return row, errors.Wrap(err, "hashrange: decode value")
	}
	return row, nil
}
