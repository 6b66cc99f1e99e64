// Package sync holds the client-side state that mirrors
// server-authoritative data: who is online, which notifications exist
// and how many are unread, and the per-entity bookkeeping for
// optimistic mutations. Push events and pull snapshots can arrive in
// any order relative to each other, so every merge here is keyed by id
// and every derived counter is updated under the same lock as the data
// it is derived from.
package sync

import "github.com/Pradeep-10x/synapse-cli/pkg/errors"

// errStaleSession marks a pull whose session ended mid-flight.
var errStaleSession = errors.StaleSessionError()
