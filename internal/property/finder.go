package property

import (
	"fmt"
)

// cacheKey identifies one resolution: a document and a selector.
type cacheKey struct {
	doc any
	sel any
}

// Cache holds the handles resolved during one editing session.
//
// A Cache is owned by a single editing session and is not safe for concurrent use.
type Cache struct {
	handles map[cacheKey]any
}

// NewCache returns an empty handle cache.
func NewCache() *Cache {
	return &Cache{handles: make(map[cacheKey]any)}
}

// Len returns the number of cached handles.
func (c *Cache) Len() int {
	return len(c.handles)
}

// Reset drops every cached handle.
func (c *Cache) Reset() {
	clear(c.handles)
}

// Forget drops every handle resolved on doc.
func (c *Cache) Forget(doc any) {
	for key := range c.handles {
		if key.doc == doc {
			delete(c.handles, key)
		}
	}
}

// Find resolves sel against the document, reusing a cached handle when the
// same selector was already resolved on the same document.
func Find[T any, V any](c *Cache, doc *Document[T], sel *Selector[T, V]) (*Handle[V], error) {
	key := cacheKey{doc: doc, sel: sel}
	if cached, ok := c.handles[key]; ok {
		h, ok := cached.(*Handle[V])
		if !ok {
			return nil, fmt.Errorf("cached handle has type %T, want %T", cached, h)
		}
		return h, nil
	}

	h, err := Resolve(doc, sel)
	if err != nil {
		return nil, err
	}
	c.handles[key] = h
	return h, nil
}

// Resolve maps sel onto the document without caching.
func Resolve[T any, V any](doc *Document[T], sel *Selector[T, V]) (*Handle[V], error) {
	path, err := sel.path(doc.target)
	if err != nil {
		return nil, err
	}
	return &Handle[V]{buf: doc.buf, path: path}, nil
}
