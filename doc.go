/*
Package hashrange implements hash-partitioned, range-ordered tables on top of
an ordered byte-keyed store. Rows sharing a hash key form a partition which is
stored contiguously and sorted by an optional range key.

Data Structure Documentation

Composite Key

Each row is stored under a single composite key. Both parts are length
prefixed, so bytes embedded in either part can never be confused with a
separator.

    Composite key layout:
    +------------------------------+------------+-------------------------------+-------------+
    | hash key length (4 bytes BE) |  hash key  | range key length (4 bytes BE) |  range key  |
    +------------------------------+------------+-------------------------------+-------------+

A row without a range key stores a zero range key length. Such a row is the
default row of its partition.

Ordering

Composite keys are not ordered bytewise. The store is opened with a comparator
which orders keys by their raw hash key bytes first and, for equal hash keys,
by their raw range key bytes. The default row therefore sorts before every
other row of its partition.

    Partition "a" with rows "", "1", "2" followed by partition "b":
    +--------------+---------------+---------------+--------------+
    |   ("a", "")  |  ("a", "1")   |  ("a", "2")   |  ("b", "")   |
    +--------------+---------------+---------------+--------------+

Range key codecs must preserve the intended order under bytewise comparison;
the table does not enforce it.
*/
package hashrange
