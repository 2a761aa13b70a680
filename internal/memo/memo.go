// Package memo caches zero-argument computations on the struct that owns them.
package memo

import "sync"

// Value holds the result of a computation once it has succeeded.
// Embed it as a field so the cache lives exactly as long as its owner.
// The zero value is ready to use and must not be copied after first use.
type Value[T any] struct {
	mu     sync.Mutex
	loaded bool
	value  T
}

// Get returns the stored value, calling compute only if nothing is stored yet.
// Errors are returned as-is and not stored, so the next Get computes again.
func (v *Value[T]) Get(compute func() (T, error)) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.loaded {
		return v.value, nil
	}
	result, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	v.value = result
	v.loaded = true
	return result, nil
}

// Loaded reports whether a value has been stored.
func (v *Value[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}
