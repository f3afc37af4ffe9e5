package evictcache

// RWLocker define base interface of sync.RWMutex
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// NoOpRWLocker is a dummy noop implementation of RWLocker interface. It is
// the default: a Cache does no synchronization of its own, and callers that
// share one across goroutines pass a *sync.RWMutex through WithLocker.
type NoOpRWLocker struct{}

// Lock perform noop Lock() operation
func (nop NoOpRWLocker) Lock() {}

// Unlock perform noop Unlock() operation
func (nop NoOpRWLocker) Unlock() {}

// RLock perform noop RLock() operation
func (nop NoOpRWLocker) RLock() {}

// RUnlock perform noop RUnlock() operation
func (nop NoOpRWLocker) RUnlock() {}
