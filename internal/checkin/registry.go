package checkin

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry хранит активные сессии по идентификатору
type Registry struct {
	mu       sync.Mutex
	deps     Deps
	ttl      time.Duration
	max      int
	sessions map[string]*Machine
}

// NewRegistry создает реестр. Сессии без активности дольше ttl удаляются,
// живых сессий одновременно не больше maxSessions.
func NewRegistry(deps Deps, ttl time.Duration, maxSessions int) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	return &Registry{
		deps:     deps.withDefaults(),
		ttl:      ttl,
		max:      maxSessions,
		sessions: make(map[string]*Machine),
	}
}

// Create начинает новую сессию с пустыми данными. Когда реестр полон даже после
// удаления простаивающих сессий, возвращает ErrTooManySessions.
func (r *Registry) Create() (string, *Machine, error) {
	r.Sweep()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) >= r.max {
		return "", nil, ErrTooManySessions
	}

	id := uuid.NewString()
	m := NewMachine(r.deps)
	r.sessions[id] = m
	return id, m, nil
}

// Get возвращает сессию или ErrSessionNotFound
func (r *Registry) Get(id string) (*Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.IdleSince(r.deps.Now()) > r.ttl {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}
	return m, nil
}

// Remove удаляет сессию
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Sweep удаляет простаивающие сессии и возвращает их число
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.deps.Now()
	removed := 0
	for id, m := range r.sessions {
		if m.IdleSince(now) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len - число сессий
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
