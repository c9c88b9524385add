package memcache

import (
	"slices"
	"sync"

	"depositrecon/pkg/types/cache"
)

var _ cache.Cache[string, any] = (*Cache[string, any])(nil)

// Cache is a concurrency-safe map that remembers write order. With a
// capacity set, the least recently written key is evicted first.
type Cache[K comparable, V any] struct {
	data     map[K]V
	order    []K
	capacity int
	mutex    sync.RWMutex
}

type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity bounds the number of entries; zero or less means unbounded.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[K, V]{
		data:     make(map[K]V),
		capacity: o.capacity,
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	val, ok := c.data[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, ok := c.data[key]; ok {
		c.removeFromOrder(key)
	}
	c.data[key] = value
	c.order = append(c.order, key)

	for c.capacity > 0 && len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
}

// Values returns values oldest write first.
func (c *Cache[K, V]) Values() []V {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	values := make([]V, 0, len(c.order))
	for _, k := range c.order {
		values = append(values, c.data[k])
	}
	return values
}

func (c *Cache[K, V]) removeFromOrder(key K) {
	if i := slices.Index(c.order, key); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}
