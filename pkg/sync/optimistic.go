package sync

import (
	"sync"

	"github.com/Pradeep-10x/synapse-cli/pkg/errors"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// Mutation is one optimistic state change: apply locally first, then
// confirm over the network.
type Mutation struct {
	// EntityID keys the per-entity serialization. Two mutations with
	// the same id never overlap.
	EntityID string

	// Action names the mutation for error messages ("like post", ...)
	Action string

	// Apply performs the local change synchronously, before the
	// network call is issued.
	Apply func()

	// Rollback restores the state Apply changed. Called only on
	// failure.
	Rollback func()

	// Call issues the remote mutation. The returned reconcile
	// function, when non-nil, installs the server-authoritative value
	// over the optimistic guess; a toggle is not idempotent against
	// concurrent edits from other clients, so the response wins.
	Call func() (reconcile func(), err error)
}

// Coordinator serializes optimistic mutations per entity. A second
// toggle on an entity whose first toggle is still in flight fails fast
// instead of double-counting.
type Coordinator struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewCoordinator creates a coordinator
func NewCoordinator() *Coordinator {
	return &Coordinator{inflight: make(map[string]struct{})}
}

// Do runs one mutation: capture-apply-call-reconcile, with rollback on
// failure. Failed mutations are not retried; retrying is for
// transport, not for user actions.
func (c *Coordinator) Do(m Mutation) error {
	c.mu.Lock()
	if _, busy := c.inflight[m.EntityID]; busy {
		c.mu.Unlock()
		return errors.MutationPendingError(m.EntityID)
	}
	c.inflight[m.EntityID] = struct{}{}

	// Optimistic change lands before the network round trip.
	m.Apply()
	c.mu.Unlock()

	reconcile, err := m.Call()

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, m.EntityID)

	if err != nil {
		m.Rollback()
		logger.Debug("Optimistic mutation rolled back", "entity_id", m.EntityID, "action", m.Action, "error", err)
		return errors.MutationError(m.Action, err)
	}

	if reconcile != nil {
		reconcile()
	}
	return nil
}

// Pending reports whether a mutation on the entity is in flight
func (c *Coordinator) Pending(entityID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.inflight[entityID]
	return busy
}
