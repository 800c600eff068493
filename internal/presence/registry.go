// Package presence tracks which authenticated users hold a live realtime
// connection.
package presence

import (
	"sort"
	"sync"
)

// Client is a live realtime connection.
type Client interface {
	// Send queues msg for delivery and reports false if the client
	// cannot accept it.
	Send(msg []byte) bool
	Close()
}

// Registry maps an identity (email) to its single live connection.
// It is created once per process and injected where needed.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
	}
}

// Register makes c the connection for email and returns the connection it
// replaced, if any. The caller decides what to do with the replaced one.
func (r *Registry) Register(email string, c Client) Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.clients[email]
	r.clients[email] = c
	return prev
}

// Remove deletes the entry for email only while c is still its connection.
// It reports whether an entry was removed.
func (r *Registry) Remove(email string, c Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.clients[email]; ok && cur == c {
		delete(r.clients, email)
		return true
	}
	return false
}

// Emails returns the connected identities in sorted order.
func (r *Registry) Emails() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.clients))
	for email := range r.clients {
		out = append(out, email)
	}
	sort.Strings(out)
	return out
}

// Broadcast delivers msg to every registered client. Clients that cannot
// take the message are unregistered and closed. It returns the number of
// clients the message was queued for.
func (r *Registry) Broadcast(msg []byte) int {
	type entry struct {
		email  string
		client Client
	}

	r.mu.RLock()
	snapshot := make([]entry, 0, len(r.clients))
	for email, c := range r.clients {
		snapshot = append(snapshot, entry{email, c})
	}
	r.mu.RUnlock()

	delivered := 0
	for _, e := range snapshot {
		if e.client.Send(msg) {
			delivered++
			continue
		}
		if r.Remove(e.email, e.client) {
			e.client.Close()
		}
	}
	return delivered
}

// CloseAll closes and unregisters every client.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[string]Client)
	r.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
}
