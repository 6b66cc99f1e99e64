package sync

import (
	"sort"
	"sync"
)

// PresenceRegistry tracks which peers are currently online. It is fed
// by peer_online/peer_offline push events and corrected by a full
// snapshot resync after every reconnect, since a missed offline event
// would otherwise leave a stale entry until the next restart.
type PresenceRegistry struct {
	mu     sync.RWMutex
	online map[string]struct{}
}

// NewPresenceRegistry creates an empty registry
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{online: make(map[string]struct{})}
}

// MarkOnline records a peer as online
func (r *PresenceRegistry) MarkOnline(peerID string) {
	if peerID == "" {
		return
	}
	r.mu.Lock()
	r.online[peerID] = struct{}{}
	r.mu.Unlock()
}

// MarkOffline removes a peer from the online set
func (r *PresenceRegistry) MarkOffline(peerID string) {
	r.mu.Lock()
	delete(r.online, peerID)
	r.mu.Unlock()
}

// IsOnline reports whether a peer is currently online
func (r *PresenceRegistry) IsOnline(peerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.online[peerID]
	return ok
}

// Snapshot returns the online peer ids, sorted for stable display
func (r *PresenceRegistry) Snapshot() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.online))
	for id := range r.online {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Len returns the number of online peers
func (r *PresenceRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.online)
}

// Resync replaces the whole set with an authoritative snapshot
func (r *PresenceRegistry) Resync(peerIDs []string) {
	next := make(map[string]struct{}, len(peerIDs))
	for _, id := range peerIDs {
		if id != "" {
			next[id] = struct{}{}
		}
	}

	r.mu.Lock()
	r.online = next
	r.mu.Unlock()
}

// Clear empties the set. Called on disconnect: with no live channel
// there is no way to learn about peers going offline.
func (r *PresenceRegistry) Clear() {
	r.mu.Lock()
	r.online = make(map[string]struct{})
	r.mu.Unlock()
}
