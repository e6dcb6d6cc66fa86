package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager hands out exactly one Store per session, rehydrating it from
// persistence on first touch. It replaces the source system's module-level
// cart singleton with an explicit, injectable object.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*sessionEntry
	ports  PortFactory
	lg     *zap.Logger
}

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// NewManager creates a Manager backed by the given persistence factory.
func NewManager(ports PortFactory, lg *zap.Logger) *Manager {
	return &Manager{
		stores: make(map[string]*sessionEntry),
		ports:  ports,
		lg:     lg,
	}
}

// NewManagerWithCleanup creates a Manager and starts a janitor goroutine
// that evicts stores idle for at least ttl, running until ctx is cancelled.
// Without eviction the store map grows by one entry per distinct session
// cookie, including forged ones.
func NewManagerWithCleanup(ctx context.Context, ports PortFactory, ttl time.Duration, lg *zap.Logger) *Manager {
	m := NewManager(ports, lg)

	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				m.evictIdle(now, ttl)
			}
		}
	}()

	return m
}

// Session returns the store for sessionID, creating and rehydrating it on
// first use.
func (m *Manager) Session(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.stores[sessionID]; ok {
		e.lastSeen = time.Now()
		return e.store
	}
	s := NewStore(ctx, m.ports.ForSession(sessionID), m.lg.With(zap.String("session_id", sessionID)))
	m.stores[sessionID] = &sessionEntry{store: s, lastSeen: time.Now()}
	return s
}

// evictIdle drops stores untouched for at least ttl. Every mutation is
// written through to the port, so an evicted session loses nothing; the
// next Session call rebuilds its store from persistence.
func (m *Manager) evictIdle(now time.Time, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.stores {
		if now.Sub(e.lastSeen) >= ttl {
			delete(m.stores, id)
		}
	}
}
