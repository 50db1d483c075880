package lock

import (
	"context"
	"sync"
	"time"
)

const DefaultTTL = 2 * time.Minute

// LocalLocker é o lease em memória usado quando não há Valkey configurado (instância única).
type LocalLocker struct {
	mu     sync.Mutex
	ttl    time.Duration
	held   map[string]lease
	now    func() time.Time
	serial uint64
}

type lease struct {
	id        uint64
	expiresAt time.Time
}

func NewLocalLocker(ttl time.Duration) *LocalLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LocalLocker{ttl: ttl, held: make(map[string]lease), now: time.Now}
}

func (l *LocalLocker) TryAcquire(_ context.Context, key string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if current, ok := l.held[key]; ok && now.Before(current.expiresAt) {
		return nil, false, nil
	}

	l.serial++
	id := l.serial
	l.held[key] = lease{id: id, expiresAt: now.Add(l.ttl)}

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if current, ok := l.held[key]; ok && current.id == id {
			delete(l.held, key)
		}
	}
	return release, true, nil
}
