package presence

import (
	"sync"
)

// UserID is the opaque identifier a client supplies when it registers.
type UserID string

// ConnectionID is the transport-assigned handle of one live connection.
type ConnectionID string

// Registry maps each user to the connection it most recently registered on.
// At most one connection is held per user; a later registration overwrites
// the earlier one.
type Registry struct {
	mu      sync.RWMutex
	entries map[UserID]ConnectionID // Protected by mu
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[UserID]ConnectionID),
	}
}

// Set upserts the connection for a user
func (r *Registry) Set(user UserID, conn ConnectionID) {
	r.mu.Lock()
	r.entries[user] = conn
	r.mu.Unlock()
}

// Remove deletes the entry for a user. Removing an absent user is a no-op.
func (r *Registry) Remove(user UserID) {
	r.mu.Lock()
	delete(r.entries, user)
	r.mu.Unlock()
}

// RemoveIf deletes the entry for a user only while it still points at conn.
// It reports whether an entry was removed.
func (r *Registry) RemoveIf(user UserID, conn ConnectionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.entries[user]; ok && current == conn {
		delete(r.entries, user)
		return true
	}
	return false
}

// Lookup returns the connection registered for a user
func (r *Registry) Lookup(user UserID) (ConnectionID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.entries[user]
	return conn, ok
}

// Len returns the number of registered users
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns a copy of all entries
func (r *Registry) Snapshot() map[UserID]ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[UserID]ConnectionID, len(r.entries))
	for user, conn := range r.entries {
		out[user] = conn
	}
	return out
}
