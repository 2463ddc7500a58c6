package store

import (
	"bytes"

	"github.com/iov-one/custody/errors"
)

// cacheIterator merges a snapshot of cached items with the iterator of the
// backing store. Cached entries take precedence and deleted entries hide the
// backing store value.
type cacheIterator struct {
	items      []item
	pos        int
	parent     Iterator
	descending bool

	// peeked entry of the parent iterator
	pkey, pvalue []byte
	pdone        bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []item, parent Iterator, descending bool) *cacheIterator {
	return &cacheIterator{
		items:      items,
		parent:     parent,
		descending: descending,
	}
}

// before returns true if a comes before b in the iteration order.
func (c *cacheIterator) before(a, b []byte) bool {
	cmp := bytes.Compare(a, b)
	if c.descending {
		return cmp > 0
	}
	return cmp < 0
}

func (c *cacheIterator) peekParent() error {
	if c.pdone || c.pkey != nil {
		return nil
	}
	key, value, err := c.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		c.pdone = true
		return nil
	case err != nil:
		return err
	}
	c.pkey, c.pvalue = key, value
	return nil
}

func (c *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := c.peekParent(); err != nil {
			return nil, nil, err
		}
		hasCached := c.pos < len(c.items)

		switch {
		case !hasCached && c.pdone:
			return nil, nil, errors.ErrIteratorDone
		case !hasCached || (!c.pdone && c.before(c.pkey, c.items[c.pos].Key())):
			key, value = c.pkey, c.pvalue
			c.pkey, c.pvalue = nil, nil
			return key, value, nil
		}

		cached := c.items[c.pos]
		c.pos++
		if !c.pdone && bytes.Equal(c.pkey, cached.Key()) {
			// Overwritten or deleted in the cache.
			c.pkey, c.pvalue = nil, nil
		}
		if s, ok := cached.(setItem); ok {
			return s.key, s.value, nil
		}
	}
}

func (c *cacheIterator) Release() {
	c.parent.Release()
	c.items = nil
}
