package hashrange

// Iterator is a forward-only, non-restartable sequence of rows, bounded by a
// partition and optionally by a range key interval. Rows are decoded lazily.
//
// An Iterator owns a store cursor and is not safe for concurrent use. It must
// be closed by its creator.
type Iterator[H, R, V any] struct {
	t   *Table[H, R, V]
	cur Cursor

	from, to []byte // bounds, to == nil scans the whole partition

	key, val  []byte // raw current entry
	current   bool   // a row was returned by the last call to Next
	exhausted bool

	row Row[H, R, V]
	err error
}

func (t *Table[H, R, V]) newIterator(from, to []byte) *Iterator[H, R, V] {
	cur := t.store.NewCursor()
	cur.Seek(from)
	return &Iterator[H, R, V]{t: t, cur: cur, from: from, to: to}
}

// More returns true if another row can be read. It does not advance the
// iterator.
func (i *Iterator[H, R, V]) More() bool {
	if i.err != nil || i.exhausted || i.cur == nil {
		return false
	}

	if !i.cur.HasNext() {
		i.err = i.cur.Err()
		i.exhausted = true
		return false
	}

	if key, _ := i.cur.PeekNext(); !i.inBounds(key) {
		i.exhausted = true
		return false
	}
	return true
}

// Next advances the iterator to the next row and returns true if successful.
// Once Next returns false, the iterator is exhausted; check Err for errors.
func (i *Iterator[H, R, V]) Next() bool {
	if !i.advance() {
		return false
	}

	row, err := i.t.decodeRow(i.key, i.val)
	if err != nil {
		i.err = err
		i.current = false
		return false
	}
	i.row = row
	return true
}

// Row returns the current row.
func (i *Iterator[H, R, V]) Row() Row[H, R, V] { return i.row }

// Remove deletes the current row from the store. It is only valid immediately
// after a successful call to Next and returns ErrNoCurrentRow otherwise.
// Iteration continues unaffected.
func (i *Iterator[H, R, V]) Remove() error {
	if i.cur == nil {
		return errReleased
	}
	if !i.current {
		return ErrNoCurrentRow
	}

	i.current = false
	return i.cur.Remove()
}

// Err exposes iterator errors, if any.
func (i *Iterator[H, R, V]) Err() error {
	return i.err
}

// Close releases the iterator and frees up resources. The iterator must not
// be used after this method is called.
func (i *Iterator[H, R, V]) Close() error {
	if i.cur == nil {
		return nil
	}

	err := i.cur.Close()
	i.cur = nil
	i.current = false
	if i.err == nil {
		i.err = errReleased
	}
	return err
}

// advance consumes the next raw entry without decoding it.
func (i *Iterator[H, R, V]) advance() bool {
	if !i.More() {
		i.current = false
		return false
	}

	i.key, i.val = i.cur.Next()
	i.current = true
	return true
}

func (i *Iterator[H, R, V]) inBounds(key []byte) bool {
	if i.to == nil {
		return CompareKeys(i.from, key, true) == 0
	}
	return i.t.cmp.Compare(i.from, key) <= 0 && i.t.cmp.Compare(key, i.to) <= 0
}
