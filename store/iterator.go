package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendBtree collects a snapshot of all cached items within [start, end)
// in ascending order.
func ascendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	insert := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// descendBtree collects a snapshot of all cached items within [start, end)
// in descending order.
func descendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	insert := func(item btree.Item) bool {
		key := item.(keyer).Key()
		// DescendLessOrEqual and DescendRange are inclusive on the
		// upper bound, while end is exclusive.
		if end != nil && bytes.Equal(key, end) {
			return true
		}
		items = append(items, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Descend(insert)
	case start == nil:
		bt.DescendLessOrEqual(bkey{end}, insert)
	case end == nil:
		bt.DescendGreaterThan(bkeyLess{start}, insert)
	default:
		bt.DescendRange(bkey{end}, bkeyLess{start}, insert)
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergeIterator combines the cached items with the iterator of the
// backing store, letting cached writes and deletes shadow the parent.
type mergeIterator struct {
	items     []keyer
	idx       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []keyer, parent Iterator, ascending bool) (*mergeIterator, error) {
	iter := &mergeIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	if err := iter.skipAllDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIterator) Valid() bool {
	return i.ownValid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *mergeIterator) Next() error {
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("Advanced past the end!")
	}
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *mergeIterator) Key() (key []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].Key()
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *mergeIterator) Value() (value []byte) {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *mergeIterator) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipAllDeleted jumps over every cached delete marker, together with the
// parent entry it shadows.
func (i *mergeIterator) skipAllDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if _, ok := i.items[i.idx].(deletedItem); !ok {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the iterator that holds the next key, if any
func (i *mergeIterator) firstKey() source {
	switch {
	case !i.parentValid() && !i.ownValid():
		return none
	case !i.parentValid():
		return us
	case !i.ownValid():
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *mergeIterator) ownValid() bool {
	return i.idx < len(i.items)
}

// makes sure the parent is non-nil before checking if it is valid
func (i *mergeIterator) parentValid() bool {
	return (i.parent != nil) && i.parent.Valid()
}
