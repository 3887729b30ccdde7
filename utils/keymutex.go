package utils

import "sync"

// KeyMutex serializes operations per string key. The router uses it keyed by
// (guild, author) and the ledger keyed by user, so same-key events dispatched
// concurrently by the gateway cannot interleave their read-decide-write
// sequences. Mutexes are kept for the process lifetime; the key space
// (authors, users) is small.
//
// The zero value is ready to use.
type KeyMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

// Lock acquires the mutex for key and returns its unlock function.
//
//	defer km.Lock(key)()
func (km *KeyMutex) Lock(key string) func() {
	v, _ := km.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
