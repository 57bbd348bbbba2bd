/*
File    : remespath/parser/cache.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

package parser

import (
	"container/list"

	"github.com/akashmaji946/remespath/json"
)

// cacheEntry is one cached compilation.
type cacheEntry struct {
	query    string
	compiled json.JNode
}

// QueryCache is a capacity-bounded LRU mapping query text to its
// compiled form. Compiled queries are immutable, so a cached value is
// safe to hand out any number of times. The cache itself is not safe for
// simultaneous mutation from multiple goroutines; callers that share one
// must serialize access.
type QueryCache struct {
	capacity int
	items    map[string]*list.Element
	lru      *list.List // front = most recently used
}

// NewQueryCache creates a cache holding at most capacity entries.
func NewQueryCache(capacity int) *QueryCache {
	return &QueryCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Get looks up a compiled query. A hit refreshes the key's recency.
func (c *QueryCache) Get(query string) (json.JNode, bool) {
	elem, ok := c.items[query]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return elem.Value.(*cacheEntry).compiled, true
}

// Add stores a compiled query. Re-adding an existing query keeps the
// stored value and only refreshes its recency. On overflow the least
// recently used entry is evicted.
func (c *QueryCache) Add(query string, compiled json.JNode) {
	if elem, ok := c.items[query]; ok {
		c.lru.MoveToFront(elem)
		return
	}
	elem := c.lru.PushFront(&cacheEntry{query: query, compiled: compiled})
	c.items[query] = elem
	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).query)
		}
	}
}

// Len returns the number of cached queries.
func (c *QueryCache) Len() int { return c.lru.Len() }
