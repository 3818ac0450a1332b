package securestore

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotFound indicates that no entry exists for the key.
	ErrNotFound = errors.New("entry not found")

	// ErrValueTooLarge indicates a value exceeds the backend's entry limit.
	ErrValueTooLarge = errors.New("value exceeds entry size limit")
)

// Backend is a bounded-entry string key-value store. Implementations reject
// single entries above their size limit with ErrValueTooLarge and report
// missing keys with ErrNotFound. Implementations must be safe for
// concurrent use.
type Backend interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(key string) (string, error)

	// Set stores value at key, overwriting any existing entry.
	// Returns ErrValueTooLarge if the value exceeds the entry limit.
	Set(key, value string) error

	// Delete removes the entry at key. Deleting an absent key is not an error.
	Delete(key string) error
}

// MemoryBackend is an in-memory Backend with an optional per-entry size
// limit. It is used in tests and as a stand-in during local development.
type MemoryBackend struct {
	mu         sync.Mutex
	entries    map[string]string
	entryLimit int
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates a MemoryBackend. An entryLimit <= 0 means
// unlimited entry size.
func NewMemoryBackend(entryLimit int) *MemoryBackend {
	return &MemoryBackend{
		entries:    make(map[string]string),
		entryLimit: entryLimit,
	}
}

// Get returns the value stored at key.
func (b *MemoryBackend) Get(key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value at key, enforcing the entry limit.
func (b *MemoryBackend) Set(key, value string) error {
	if b.entryLimit > 0 && len(value) > b.entryLimit {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrValueTooLarge, len(value), b.entryLimit)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = value
	return nil
}

// Delete removes the entry at key.
func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, key)
	return nil
}

// Len returns the number of stored entries.
func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
