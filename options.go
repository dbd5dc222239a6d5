package hashrange

import (
	"github.com/sirupsen/logrus"
)

// Backend selects the store engine.
type Backend string

// Supported backends
const (
	// GoLevelDB persists data with github.com/syndtr/goleveldb.
	GoLevelDB Backend = "goleveldb"
	// Memory keeps data in memory with github.com/syndtr/goleveldb. The path is ignored.
	Memory Backend = "memory"
)

func (b Backend) isValid() bool {
	return b == GoLevelDB || b == Memory
}

// Compression is the block compression codec used by the store.
type Compression byte

func (c Compression) isValid() bool {
	return c >= SnappyCompression && c < unknownCompression
}

// Supported compression codecs
const (
	SnappyCompression Compression = iota
	NoCompression
	unknownCompression
)

// Options define store specific options.
type Options struct {
	// Backend is the store engine.
	// Default: GoLevelDB.
	Backend Backend

	// Comparator orders composite keys. It is persisted by the store and
	// must not change between opens.
	// Default: DefaultComparator.
	Comparator KeyComparator

	// ErrorIfMissing fails Open if the store does not exist yet.
	// By default, missing stores are created.
	ErrorIfMissing bool

	// The compression codec to use.
	// Default: SnappyCompression.
	Compression Compression

	// BlockCacheCapacity is the capacity of the block cache in bytes.
	// Default: 8MiB.
	BlockCacheCapacity int

	// WriteBufferSize is the amount of data to build up in memory before
	// it is flushed to disk.
	// Default: 4MiB.
	WriteBufferSize int

	// NoSync disables syncing writes to disk.
	NoSync bool

	// Logger receives lifecycle events.
	// Default: logrus.StandardLogger().
	Logger logrus.FieldLogger
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if oo.Backend == "" {
		oo.Backend = GoLevelDB
	}
	if oo.Comparator == nil {
		oo.Comparator = DefaultComparator
	}
	if !oo.Compression.isValid() {
		oo.Compression = SnappyCompression
	}
	if oo.BlockCacheCapacity < 1 {
		oo.BlockCacheCapacity = 8 << 20
	}
	if oo.WriteBufferSize < 1 {
		oo.WriteBufferSize = 4 << 20
	}
	if oo.Logger == nil {
		oo.Logger = logrus.StandardLogger()
	}

	return &oo
}
