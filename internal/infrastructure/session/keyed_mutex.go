package session

import (
	"context"
	"sync"
)

// KeyedMutex serializa el trabajo por usuario: dos peticiones de la misma sesión nunca se
// intercalan, las de usuarios distintos corren en paralelo.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

// NewKeyedMutex lock por usuario dentro del proceso.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: map[int64]*refMutex{}}
}

// Lock bloquea la llave y devuelve la función que la libera. Nunca falla; ctx no se usa.
func (k *KeyedMutex) Lock(_ context.Context, key int64) (unlock func(), err error) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}, nil
}
