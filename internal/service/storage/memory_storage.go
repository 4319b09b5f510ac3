package storage

import "sync"

// MemoryStorage - in-memory keyed storage
// K - key type, V - stored object type
type MemoryStorage[K comparable, V any] struct {
	data  map[K]V
	mutex sync.RWMutex
}

// NewMemoryStorage creates a new storage
func NewMemoryStorage[K comparable, V any]() *MemoryStorage[K, V] {
	return &MemoryStorage[K, V]{
		data: make(map[K]V),
	}
}

// Update replaces the value under key with fn(current, exists)
func (s *MemoryStorage[K, V]) Update(key K, fn func(current V, exists bool) V) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	current, exists := s.data[key]
	s.data[key] = fn(current, exists)
}

// Get returns an object by key
func (s *MemoryStorage[K, V]) Get(key K) (V, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.data[key]
	return value, exists
}

// ForEach calls fn on a snapshot of the data until fn returns false
func (s *MemoryStorage[K, V]) ForEach(fn func(key K, value V) bool) {
	s.mutex.RLock()
	items := make(map[K]V, len(s.data))
	for k, v := range s.data {
		items[k] = v
	}
	s.mutex.RUnlock()

	for k, v := range items {
		if !fn(k, v) {
			break
		}
	}
}

// Count returns the number of keys
func (s *MemoryStorage[K, V]) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
