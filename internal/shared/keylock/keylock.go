package keylock

import "github.com/moby/locker"

// KeyedMutex serializes work per key. Idle keys are dropped by the
// underlying locker.
type KeyedMutex struct {
	l *locker.Locker
}

func New() *KeyedMutex {
	return &KeyedMutex{l: locker.New()}
}

// Lock blocks until key is free and returns the matching unlock func.
func (k *KeyedMutex) Lock(key string) func() {
	k.l.Lock(key)
	return func() {
		_ = k.l.Unlock(key)
	}
}
