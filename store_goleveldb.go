package hashrange

import (
	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// goleveldbComparer adapts a KeyComparator to goleveldb. Keys are never
// shortened, so index blocks only ever contain well-formed composite keys.
type goleveldbComparer struct {
	KeyComparator
}

var _ comparer.Comparer = goleveldbComparer{}

func (goleveldbComparer) Separator(dst, a, b []byte) []byte { return nil }
func (goleveldbComparer) Successor(dst, b []byte) []byte    { return nil }

func goleveldbOptions(o *Options) *opt.Options {
	oo := &opt.Options{
		Comparer:           goleveldbComparer{KeyComparator: o.Comparator},
		ErrorIfMissing:     o.ErrorIfMissing,
		BlockCacheCapacity: o.BlockCacheCapacity,
		WriteBuffer:        o.WriteBufferSize,
		NoSync:             o.NoSync,
		Compression:        opt.SnappyCompression,
	}
	if o.Compression == NoCompression {
		oo.Compression = opt.NoCompression
	}
	return oo
}

func openGoLevelDB(path string, o *Options, log logrus.FieldLogger) (Store, error) {
	db, err := leveldb.OpenFile(path, goleveldbOptions(o))
	if err != nil {
		return nil, err
	}
	return &goleveldbStore{db: db, log: log}, nil
}

func openMemory(o *Options, log logrus.FieldLogger) (Store, error) {
	oo := goleveldbOptions(o)
	oo.ErrorIfMissing = false

	db, err := leveldb.Open(storage.NewMemStorage(), oo)
	if err != nil {
		return nil, err
	}
	return &goleveldbStore{db: db, log: log}, nil
}

type goleveldbStore struct {
	db     *leveldb.DB
	log    logrus.FieldLogger
	closed bool
}

func (s *goleveldbStore) Get(key []byte) ([]byte, bool, error) {
	val, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *goleveldbStore) Put(key, value []byte) error {
	return s.db.Put(key, value, nil)
}

func (s *goleveldbStore) Delete(key []byte) error {
	return s.db.Delete(key, nil)
}

func (s *goleveldbStore) NewCursor() Cursor {
	return newCursor(&goleveldbIterator{it: s.db.NewIterator(nil, nil)}, s.Delete)
}

func (s *goleveldbStore) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	err := s.db.Close()
	s.log.Info("hashrange: store closed")
	return err
}

type goleveldbIterator struct {
	it iterator.Iterator
}

func (i *goleveldbIterator) seek(key []byte) bool { return i.it.Seek(key) }
func (i *goleveldbIterator) next() bool           { return i.it.Next() }
func (i *goleveldbIterator) key() []byte          { return i.it.Key() }
func (i *goleveldbIterator) value() []byte        { return i.it.Value() }
func (i *goleveldbIterator) err() error           { return i.it.Error() }

func (i *goleveldbIterator) close() error {
	err := i.it.Error()
	i.it.Release()
	return err
}
