package pebble

import (
	"bytes"

	"github.com/cockroachdb/pebble"
	"github.com/iov-one/synto/errors"
	"github.com/iov-one/synto/store"
)

// reservedPrefix marks the metadata keys, hidden from iteration.
var reservedPrefix = []byte("_pb:")

type iterator struct {
	iter    *pebble.Iterator
	reverse bool
	key     []byte
	value   []byte
	valid   bool
}

var _ store.Iterator = (*iterator)(nil)

func newIterator(db *pebble.DB, start, end []byte, reverse bool) (*iterator, error) {
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	it := &iterator{iter: iter, reverse: reverse}
	if reverse {
		it.valid = iter.Last()
	} else {
		it.valid = iter.First()
	}
	if err := it.load(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// load copies the current entry, skipping reserved keys.
func (i *iterator) load() error {
	for i.valid && bytes.HasPrefix(i.iter.Key(), reservedPrefix) {
		i.advance()
	}
	if !i.valid {
		if err := i.iter.Error(); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
		return nil
	}
	val, err := i.iter.ValueAndErr()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	i.key = append([]byte(nil), i.iter.Key()...)
	i.value = append([]byte(nil), val...)
	return nil
}

func (i *iterator) advance() {
	if i.reverse {
		i.valid = i.iter.Prev()
	} else {
		i.valid = i.iter.Next()
	}
}

func (i *iterator) Valid() bool {
	return i.valid
}

func (i *iterator) Next() error {
	if !i.valid {
		panic("read after end of iterator")
	}
	i.advance()
	return i.load()
}

func (i *iterator) Key() []byte {
	if !i.valid {
		panic("read after end of iterator")
	}
	return i.key
}

func (i *iterator) Value() []byte {
	if !i.valid {
		panic("read after end of iterator")
	}
	return i.value
}

func (i *iterator) Close() {
	i.iter.Close()
}
