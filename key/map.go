package key

// Map is an associative table keyed by Key. Entries are bucketed by the
// combined hash and matched element-wise inside a bucket, so hash
// collisions never merge two sequences.
type Map[E comparable, V any] struct {
	buckets map[uint64][]entry[E, V]
	size    int
}

type entry[E comparable, V any] struct {
	key   Key[E]
	value V
}

// NewMap returns an empty map sized for roughly capacity keys.
func NewMap[E comparable, V any](capacity int) *Map[E, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &Map[E, V]{buckets: make(map[uint64][]entry[E, V], capacity)}
}

// Get returns the value stored under k.
func (m *Map[E, V]) Get(k Key[E]) (V, bool) {
	for _, e := range m.buckets[k.Hash()] {
		if e.key.Equal(k) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Set stores v under k, replacing any previous value.
func (m *Map[E, V]) Set(k Key[E], v V) {
	m.Update(k, func(V, bool) V { return v })
}

// Update replaces the value under k with fn(old, present) and returns it.
func (m *Map[E, V]) Update(k Key[E], fn func(old V, present bool) V) V {
	h := k.Hash()
	bucket := m.buckets[h]
	for i := range bucket {
		if bucket[i].key.Equal(k) {
			bucket[i].value = fn(bucket[i].value, true)
			return bucket[i].value
		}
	}
	var zero V
	v := fn(zero, false)
	m.buckets[h] = append(bucket, entry[E, V]{key: k, value: v})
	m.size++
	return v
}

// Len returns the number of distinct keys.
func (m *Map[E, V]) Len() int {
	return m.size
}

// Range calls fn for every entry until fn returns false. Order is unspecified.
func (m *Map[E, V]) Range(fn func(Key[E], V) bool) {
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}
