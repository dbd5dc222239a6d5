package hashrange

import (
	"github.com/sirupsen/logrus"
)

// Store is an ordered byte-keyed store. Keys are ordered by the KeyComparator
// the store was opened with.
type Store interface {
	// Get returns the value stored under key. A missing key is reported as
	// ok == false and is never an error.
	Get(key []byte) (value []byte, ok bool, err error)

	// Put stores value under key.
	Put(key, value []byte) error

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key []byte) error

	// NewCursor returns a new cursor. Call Seek before use.
	NewCursor() Cursor

	// Close releases the store. All cursors must be closed first.
	Close() error
}

// Cursor is a position-tracking handle over the sorted key space of a Store.
// Cursors read the snapshot taken when they were created, so entries removed
// while iterating do not disturb them. They are not safe for concurrent use.
type Cursor interface {
	// Seek positions the cursor before the first entry with a key >= key.
	Seek(key []byte)

	// HasNext returns true if another entry can be read.
	HasNext() bool

	// PeekNext returns the next entry without consuming it. The returned
	// slices are only valid until the cursor is moved.
	PeekNext() (key, value []byte)

	// Next consumes and returns the next entry.
	Next() (key, value []byte)

	// Remove deletes the entry most recently returned by Next from the store.
	// The cursor can continue iterating afterwards.
	Remove() error

	// Err exposes cursor errors, if any.
	Err() error

	// Close releases the cursor. It must not be used after this method is called.
	Close() error
}

// OpenStore opens (or creates) a store at path, installing the comparator of
// the options as its persistent sort order.
func OpenStore(path string, o *Options) (Store, error) {
	o = o.norm()
	log := o.Logger.WithFields(logrus.Fields{"backend": o.Backend, "path": path})

	var (
		s   Store
		err error
	)
	switch o.Backend {
	case GoLevelDB:
		s, err = openGoLevelDB(path, o, log)
	case Memory:
		s, err = openMemory(o, log)
	default:
		err = ErrUnknownBackend
	}
	if err != nil {
		log.WithError(err).Error("hashrange: cannot open store")
		return nil, &OpenError{Backend: o.Backend, Path: path, Err: err}
	}

	log.WithField("comparator", o.Comparator.Name()).Info("hashrange: store opened")
	return s, nil
}

// --------------------------------------------------------------------

// rawIterator is the minimal engine iterator a cursor is built upon.
type rawIterator interface {
	// seek positions at the first entry >= key and reports whether it exists.
	seek(key []byte) bool
	// next advances and reports whether an entry exists.
	next() bool
	key() []byte
	value() []byte
	err() error
	close() error
}

// cursor implements Cursor on top of a rawIterator which is always
// positioned on the next unconsumed entry.
type cursor struct {
	raw rawIterator
	del func(key []byte) error

	valid  bool
	closed bool
	last   []byte // key of the most recently consumed entry
}

func newCursor(raw rawIterator, del func([]byte) error) *cursor {
	return &cursor{raw: raw, del: del}
}

func (c *cursor) Seek(key []byte) {
	if c.closed {
		return
	}
	c.valid = c.raw.seek(key)
	c.last = nil
}

func (c *cursor) HasNext() bool { return !c.closed && c.valid }

func (c *cursor) PeekNext() (key, value []byte) {
	if !c.HasNext() {
		return nil, nil
	}
	return c.raw.key(), c.raw.value()
}

func (c *cursor) Next() (key, value []byte) {
	if !c.HasNext() {
		c.last = nil
		return nil, nil
	}

	key = append([]byte(nil), c.raw.key()...)
	value = append([]byte(nil), c.raw.value()...)
	c.last = key
	c.valid = c.raw.next()
	return key, value
}

func (c *cursor) Remove() error {
	if c.closed {
		return ErrClosed
	}
	if c.last == nil {
		return ErrNoCurrentRow
	}

	key := c.last
	c.last = nil
	return c.del(key)
}

func (c *cursor) Err() error {
	if c.closed {
		return nil
	}
	return c.raw.err()
}

func (c *cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.valid = false
	c.last = nil
	return c.raw.close()
}
