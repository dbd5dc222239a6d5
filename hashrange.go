package hashrange

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrClosed is returned when a table or store is used after Close.
var ErrClosed = errors.New("hashrange: is closed")

// ErrKeyTooLong is returned when a serialized hash or range key does not fit
// into the 4-byte length prefix of a composite key.
var ErrKeyTooLong = errors.New("hashrange: key exceeds length prefix capacity")

// ErrMalformedKey is returned when a composite key cannot be split.
var ErrMalformedKey = errors.New("hashrange: malformed composite key")

// ErrNoCurrentRow is returned by Iterator.Remove when no row was returned
// by the immediately preceding call to Next.
var ErrNoCurrentRow = errors.New("hashrange: no current row")

// ErrUnknownBackend is returned when Options name a backend which is not supported.
var ErrUnknownBackend = errors.New("hashrange: unknown backend")

var errReleased = errors.New("hashrange: iterator was released")

// OpenError is returned when a store cannot be opened or created.
type OpenError struct {
	Backend Backend
	Path    string
	Err     error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("hashrange: cannot open %s store at %q: %v", e.Backend, e.Path, e.Err)
}

// Unwrap returns the underlying engine error.
func (e *OpenError) Unwrap() error { return e.Err }

// --------------------------------------------------------------------

// Row is a single table row, materialized from a store entry at read time.
type Row[H, R, V any] struct {
	HashKey  H
	RangeKey R
	Value    V

	ranged bool
}

// HasRangeKey returns false for the default row of a partition. The RangeKey
// of a default row is the zero value of R.
func (r Row[H, R, V]) HasRangeKey() bool { return r.ranged }
