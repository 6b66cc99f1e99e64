package sync

import (
	"sync"
	"time"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/errors"
	"github.com/Pradeep-10x/synapse-cli/pkg/logger"
)

// NotificationMirror keeps a newest-first copy of the server's
// notification list plus the derived unread counter. Both mutation
// paths (push handler and pull/command handler) hold the same lock, so
// the counter can never drift from the list: it always equals the
// count of records with IsRead=false.
type NotificationMirror struct {
	mu      sync.RWMutex
	records []api.Notification
	seen    map[string]struct{}
	unread  int

	// markAllRead persistence retry budget
	persistRetries int
	persistDelay   time.Duration
}

// NewNotificationMirror creates an empty mirror
func NewNotificationMirror() *NotificationMirror {
	return &NotificationMirror{
		seen:           make(map[string]struct{}),
		persistRetries: 3,
		persistDelay:   2 * time.Second,
	}
}

// Pull replaces the local list with the authoritative one. Used on
// cold start and after every reconnect.
func (m *NotificationMirror) Pull(fetch func() ([]api.Notification, error)) error {
	records, err := fetch()
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(records))
	unread := 0
	deduped := records[:0]
	for _, rec := range records {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		deduped = append(deduped, rec)
		if !rec.IsRead {
			unread++
		}
	}

	m.mu.Lock()
	m.records = deduped
	m.seen = seen
	m.unread = unread
	m.mu.Unlock()

	logger.Debug("Notification mirror replaced", "count", len(deduped), "unread", unread)
	return nil
}

// OnPush merges a pushed record. A push necessarily postdates any
// pulled snapshot, so it goes to the head - unless the id is already
// present, which happens when a push races a pull covering the same
// record. Returns whether the record was inserted.
func (m *NotificationMirror) OnPush(rec api.Notification) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.seen[rec.ID]; dup {
		return false
	}

	m.seen[rec.ID] = struct{}{}
	m.records = append([]api.Notification{rec}, m.records...)
	if !rec.IsRead {
		m.unread++
	}
	return true
}

// MarkAllRead optimistically marks every record read and zeroes the
// counter, then persists. If persistence still fails after the retry
// budget, the prior state is restored and a mutation error returned.
func (m *NotificationMirror) MarkAllRead(persist func() error) error {
	m.mu.Lock()
	prevRecords := make([]api.Notification, len(m.records))
	copy(prevRecords, m.records)
	prevUnread := m.unread

	for i := range m.records {
		m.records[i].IsRead = true
	}
	m.unread = 0
	m.mu.Unlock()

	if prevUnread == 0 {
		// Nothing was unread; still persist so the server agrees.
		return persist()
	}

	var err error
	for attempt := 0; attempt < m.persistRetries; attempt++ {
		if err = persist(); err == nil {
			return nil
		}
		if attempt < m.persistRetries-1 {
			time.Sleep(m.persistDelay)
		}
	}

	m.mu.Lock()
	m.records = prevRecords
	m.unread = prevUnread
	m.mu.Unlock()

	logger.Error("Mark-all-read failed, local state restored", "error", err)
	return errors.MutationError("mark notifications read", err)
}

// Records returns a copy of the list, newest first
func (m *NotificationMirror) Records() []api.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]api.Notification, len(m.records))
	copy(out, m.records)
	return out
}

// UnreadCount returns the derived unread counter
func (m *NotificationMirror) UnreadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.unread
}

// Len returns the number of records
func (m *NotificationMirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Clear empties the mirror
func (m *NotificationMirror) Clear() {
	m.mu.Lock()
	m.records = nil
	m.seen = make(map[string]struct{})
	m.unread = 0
	m.mu.Unlock()
}

// SetPersistRetry overrides the mark-all-read retry budget
func (m *NotificationMirror) SetPersistRetry(retries int, delay time.Duration) {
	m.mu.Lock()
	m.persistRetries = retries
	m.persistDelay = delay
	m.mu.Unlock()
}
