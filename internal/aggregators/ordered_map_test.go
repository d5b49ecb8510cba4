package aggregators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap_Upsert(t *testing.T) {
	t.Parallel()

	m := NewOrderedMap[string, *int]()
	created := 0
	create := func() *int {
		created++
		v := created
		return &v
	}

	first := m.Upsert("b", create)
	again := m.Upsert("b", create)
	m.Upsert("a", create)

	assert.Same(t, first, again)
	assert.Equal(t, 2, created)
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, 2, m.Len())

	_, ok := m.Get("missing")
	assert.False(t, ok)
}

func TestCounter(t *testing.T) {
	t.Parallel()

	c := NewCounter[int]()
	for _, k := range []int{3, 1, 3, 2, 3, 1} {
		c.Inc(k)
	}

	assert.Equal(t, []int{3, 1, 2}, c.Keys())
	assert.Equal(t, int64(3), c.Count(3))
	assert.Equal(t, int64(0), c.Count(99))
	assert.Equal(t, map[int]int64{3: 3, 1: 2, 2: 1}, c.ToMap())

	// ToMap returns a copy
	out := c.ToMap()
	out[3] = 100
	assert.Equal(t, int64(3), c.Count(3))
}
