package hashrange

import "bytes"

// KeyComparator defines a total ordering over composite keys. It is installed
// into the store as its persistent sort order.
type KeyComparator interface {
	// Compare returns -1, 0, 1 if a is less than, equal to or greater than b respectively.
	Compare(a, b []byte) int

	// Name returns the name of the comparator.
	//
	// Stores persist the name, opening a store with a different comparator
	// than the one it was created with will fail.
	Name() string
}

// DefaultComparator orders composite keys by hash key bytes, then by range key bytes.
var DefaultComparator KeyComparator = Comparator{}

// Comparator is the default KeyComparator.
type Comparator struct{}

// Compare implements KeyComparator.
func (Comparator) Compare(a, b []byte) int { return CompareKeys(a, b, false) }

// Name implements KeyComparator.
func (Comparator) Name() string { return "hashrange.HashRangeComparator" }

// CompareKeys compares two composite keys. Hash key bytes are compared first.
// If partitionOnly is true, keys with equal hash key bytes are considered equal
// and the range parts are never decoded. Otherwise, ties are broken by range
// key bytes.
func CompareKeys(a, b []byte, partitionOnly bool) int {
	ha, ra := scanPart(a)
	hb, rb := scanPart(b)
	if c := bytes.Compare(ha, hb); c != 0 || partitionOnly {
		return c
	}

	ra, _ = scanPart(ra)
	rb, _ = scanPart(rb)
	if c := bytes.Compare(ra, rb); c != 0 {
		return c
	}

	// identical parts imply identical well-formed keys
	return bytes.Compare(a, b)
}
