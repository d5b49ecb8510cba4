package aggregators

// OrderedMap is a map that remembers the order in which keys were first inserted.
// Iteration order is first-seen order, which also serves as the tie-break for ranking.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{values: make(map[K]V)}
}

// Upsert returns the value for key, creating it with create on first touch.
func (m *OrderedMap[K, V]) Upsert(key K, create func() V) V {
	if v, ok := m.values[key]; ok {
		return v
	}
	v := create()
	m.keys = append(m.keys, key)
	m.values[key] = v
	return v
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in first-seen order. The returned slice must not be modified.
func (m *OrderedMap[K, V]) Keys() []K {
	return m.keys
}

// Counter counts occurrences per key, keeping first-seen key order.
type Counter[K comparable] struct {
	keys   []K
	counts map[K]int64
}

func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int64)}
}

func (c *Counter[K]) Inc(key K) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *Counter[K]) Count(key K) int64 {
	return c.counts[key]
}

func (c *Counter[K]) Len() int {
	return len(c.keys)
}

// Keys returns the keys in first-seen order. The returned slice must not be modified.
func (c *Counter[K]) Keys() []K {
	return c.keys
}

// ToMap returns a copy of the counts as a plain map.
func (c *Counter[K]) ToMap() map[K]int64 {
	out := make(map[K]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
