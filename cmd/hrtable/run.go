package main

import (
	"fmt"
	"io"

	"github.com/bsm/hashrange"
	"github.com/pkg/errors"
)

var errUsage = errors.New("invalid usage")

type table = hashrange.Table[string, string, string]

// arity lists the accepted number of arguments following the hash key.
var arity = map[string][]int{
	"put":  {1, 2},
	"get":  {0, 1},
	"del":  {0, 1},
	"scan": {0, 2},
}

// checkArgs validates a command line without touching a table.
func checkArgs(args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	for _, n := range arity[args[0]] {
		if len(args)-2 == n {
			return nil
		}
	}
	return errUsage
}

func run(tbl *table, w io.Writer, args []string) error {
	if err := checkArgs(args); err != nil {
		return err
	}

	cmd, hash, rest := args[0], args[1], args[2:]
	switch cmd {
	case "put":
		switch len(rest) {
		case 1:
			return tbl.PutDefault(hash, rest[0])
		case 2:
			return tbl.Put(hash, rest[0], rest[1])
		}
	case "get":
		var (
			val string
			ok  bool
			err error
		)
		switch len(rest) {
		case 0:
			val, ok, err = tbl.GetDefault(hash)
		case 1:
			val, ok, err = tbl.Get(hash, rest[0])
		default:
			return errUsage
		}
		if err != nil {
			return err
		} else if !ok {
			return errors.New("not found")
		}
		_, err = fmt.Fprintln(w, val)
		return err
	case "del":
		switch len(rest) {
		case 0:
			return tbl.DeleteDefault(hash)
		case 1:
			return tbl.Delete(hash, rest[0])
		}
	case "scan":
		var (
			iter *hashrange.Iterator[string, string, string]
			err  error
		)
		switch len(rest) {
		case 0:
			iter, err = tbl.Range(hash)
		case 2:
			iter, err = tbl.RangeBetween(hash, rest[0], rest[1])
		default:
			return errUsage
		}
		if err != nil {
			return err
		}
		defer iter.Close()

		for iter.Next() {
			row := iter.Row()
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", row.HashKey, row.RangeKey, row.Value); err != nil {
				return err
			}
		}
		return iter.Err()
	}
	return errUsage
}
