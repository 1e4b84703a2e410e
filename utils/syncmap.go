package utils

import (
	"fmt"
	"strings"
	"sync"
)

// A SyncMap is a concurrency-safe sync.Map that uses strongly-typed
// method signatures to ensure the types of its stored data are known.
type SyncMap[K comparable, V any] struct {
	sync.Map
}

// Get retrieves the value associated with the given key from the map.
// It returns the value and a boolean indicating whether the key was found.
func (m *SyncMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.Load(key)
	if !ok {
		var empty V
		return empty, false
	}
	return value.(V), true
}

// Put inserts or updates a key-value pair in the map.
func (m *SyncMap[K, V]) Put(key K, value V) {
	m.Store(key, value)
}

// GetOrCompute returns the value stored for key, computing and storing it
// first when absent. Concurrent callers may compute the same key more than
// once; the first stored value wins.
func (m *SyncMap[K, V]) GetOrCompute(key K, compute func() V) V {
	if value, ok := m.Get(key); ok {
		return value
	}
	actual, _ := m.LoadOrStore(key, compute())
	return actual.(V)
}

// Len counts the entries. It walks the whole map.
func (m *SyncMap[K, V]) Len() int {
	n := 0
	m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// String lists the key-value pairs in no particular order.
func (m *SyncMap[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	m.Range(func(key, value any) bool {
		if !first {
			sb.WriteString(" ")
		}
		first = false
		fmt.Fprintf(&sb, "%v=%v", key, value)
		return true
	})
	sb.WriteString("}")
	return sb.String()
}
