package realtime

import (
	"sync"

	"github.com/classpulse/backend/internal/models"
)

// Registry tracks the session each connection is bound to. A connection
// holds at most one session; binding again overwrites the previous one.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session // connection id -> session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*models.Session)}
}

// Bind stores the session for its connection id, overwriting any
// previous binding.
func (r *Registry) Bind(sess *models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sess.ConnID] = sess
}

// Get returns the session bound to a connection id.
func (r *Registry) Get(connID string) (*models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[connID]
	return sess, ok
}

// Remove deletes and returns the session bound to a connection id.
func (r *Registry) Remove(connID string) (*models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[connID]
	if ok {
		delete(r.sessions, connID)
	}
	return sess, ok
}
