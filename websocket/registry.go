package websocket

import "sync"

// Registry indexes live sockets by user. One registry is owned by one
// gateway; nothing else mutates it.
type Registry struct {
	mu     sync.RWMutex
	byUser map[uint]map[string]struct{}
	bySock map[string]uint
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[uint]map[string]struct{}),
		bySock: make(map[string]uint),
	}
}

func (r *Registry) Add(userID uint, socketID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sockets, ok := r.byUser[userID]
	if !ok {
		sockets = make(map[string]struct{})
		r.byUser[userID] = sockets
	}
	sockets[socketID] = struct{}{}
	r.bySock[socketID] = userID
}

// Remove forgets the socket and drops the user entry with its last socket.
func (r *Registry) Remove(socketID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.bySock[socketID]
	if !ok {
		return
	}
	delete(r.bySock, socketID)
	sockets := r.byUser[userID]
	delete(sockets, socketID)
	if len(sockets) == 0 {
		delete(r.byUser, userID)
	}
}

// SocketsOf lists the socket ids of userID on this instance.
func (r *Registry) SocketsOf(userID uint) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byUser[userID]))
	for id := range r.byUser[userID] {
		out = append(out, id)
	}
	return out
}

// Counts returns connected users and sockets.
func (r *Registry) Counts() (users, sockets int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser), len(r.bySock)
}
