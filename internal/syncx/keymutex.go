// Package syncx provides small synchronization helpers.
package syncx

import "sync"

// KeyMutex serializes critical sections per string key. The domain stores use
// it to serialize read-modify-write cycles on a single storage key, so two
// concurrent mutations of the same partition cannot silently drop each
// other's write. Different keys do not contend.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyMutex returns an empty KeyMutex.
func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
func (m *KeyMutex) Lock(key string) {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.mu.Unlock()
	l.Lock()
}

// Unlock releases the mutex for key. Calling Unlock for a key that was
// never locked panics, same as sync.Mutex.
func (m *KeyMutex) Unlock(key string) {
	m.mu.Lock()
	l, ok := m.locks[key]
	m.mu.Unlock()
	if !ok {
		panic("syncx: unlock of unlocked key " + key)
	}
	l.Unlock()
}
