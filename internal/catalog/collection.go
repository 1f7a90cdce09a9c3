package catalog

// Collection is a keyed collection that remembers insertion order. The
// upstream API is order-sensitive (first variant = master, first channel =
// initial selection), so plain maps are not enough.
type Collection[T any] struct {
	values []T
	keys   []string // parallel to values; "" for unkeyed entries
	index  map[string]int
}

func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{index: make(map[string]int)}
}

// Put stores v under key. An unkeyed (empty key) value appends and is
// reachable by order only; a repeated key overwrites in place keeping the
// original position.
func (c *Collection[T]) Put(key string, v T) {
	if key != "" {
		if i, ok := c.index[key]; ok {
			c.values[i] = v
			return
		}
		c.index[key] = len(c.values)
	}
	c.keys = append(c.keys, key)
	c.values = append(c.values, v)
}

func (c *Collection[T]) Get(key string) (T, bool) {
	var zero T
	i, ok := c.index[key]
	if !ok {
		return zero, false
	}
	return c.values[i], true
}

func (c *Collection[T]) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

func (c *Collection[T]) Len() int {
	return len(c.values)
}

// All returns the values in insertion order. The returned slice is a copy;
// the values themselves are shared.
func (c *Collection[T]) All() []T {
	out := make([]T, len(c.values))
	copy(out, c.values)
	return out
}

func (c *Collection[T]) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c *Collection[T]) First() (T, bool) {
	var zero T
	if len(c.values) == 0 {
		return zero, false
	}
	return c.values[0], true
}
