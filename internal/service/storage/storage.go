package storage

// Storage is the keyed store the name index is built on
type Storage[K comparable, V any] interface {
	Update(key K, fn func(current V, exists bool) V)
	Get(key K) (V, bool)
	ForEach(fn func(key K, value V) bool)
	Count() int
}

var _ Storage[string, []int] = (*MemoryStorage[string, []int])(nil)
