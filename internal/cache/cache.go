// Package cache provides a single-generation value holder
package cache

import (
	"sync"
	"time"
)

// Value holds at most one generation of a computed value. Each Set
// replaces the generation wholesale; readers never observe a partial
// update. A zero or negative TTL means the value never expires once
// set and lives for the process lifetime.
type Value[T any] struct {
	mu    sync.RWMutex
	val   T
	setAt time.Time
	ok    bool
	ttl   time.Duration
}

// New creates an empty holder with the given TTL.
func New[T any](ttl time.Duration) *Value[T] {
	return &Value[T]{ttl: ttl}
}

// Get returns the cached value if one is set and still fresh at now.
func (v *Value[T]) Get(now time.Time) (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if !v.ok || (v.ttl > 0 && now.Sub(v.setAt) >= v.ttl) {
		var zero T
		return zero, false
	}
	return v.val, true
}

// Set replaces the cached generation and stamps it with now.
func (v *Value[T]) Set(val T, now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.val = val
	v.setAt = now
	v.ok = true
}

// Clear drops the cached generation.
func (v *Value[T]) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	var zero T
	v.val = zero
	v.ok = false
}
