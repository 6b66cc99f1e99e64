package sync

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/Pradeep-10x/synapse-cli/pkg/api"
	"github.com/Pradeep-10x/synapse-cli/pkg/errors"
)

func notif(id string, read bool) api.Notification {
	return api.Notification{
		ID:        id,
		Kind:      api.NotificationKindLike,
		IsRead:    read,
		CreatedAt: time.Now(),
	}
}

// The counter must equal the number of unread records after any
// sequence of operations.
func checkCounter(t *testing.T, m *NotificationMirror) {
	t.Helper()
	unread := 0
	for _, rec := range m.Records() {
		if !rec.IsRead {
			unread++
		}
	}
	if got := m.UnreadCount(); got != unread {
		t.Errorf("UnreadCount() = %d, but %d records are unread", got, unread)
	}
}

func TestPullReplacesAndCounts(t *testing.T) {
	m := NewNotificationMirror()

	err := m.Pull(func() ([]api.Notification, error) {
		return []api.Notification{notif("n3", false), notif("n2", true), notif("n1", false)}, nil
	})
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}

	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
	if m.UnreadCount() != 2 {
		t.Errorf("UnreadCount() = %d, want 2", m.UnreadCount())
	}
	checkCounter(t, m)
}

func TestPullDedupes(t *testing.T) {
	m := NewNotificationMirror()

	err := m.Pull(func() ([]api.Notification, error) {
		return []api.Notification{notif("n1", false), notif("n1", false), notif("n2", false)}, nil
	})
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}

	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after dedup", m.Len())
	}
	if m.UnreadCount() != 2 {
		t.Errorf("UnreadCount() = %d, want 2", m.UnreadCount())
	}
}

func TestPullError(t *testing.T) {
	m := NewNotificationMirror()
	m.OnPush(notif("n1", false))

	err := m.Pull(func() ([]api.Notification, error) {
		return nil, stderrors.New("network down")
	})
	if err == nil {
		t.Fatal("Pull should propagate the fetch error")
	}

	if m.Len() != 1 {
		t.Error("a failed pull must leave the mirror untouched")
	}
}

func TestOnPushPrependsNewestFirst(t *testing.T) {
	m := NewNotificationMirror()

	m.OnPush(notif("old", false))
	m.OnPush(notif("new", false))

	records := m.Records()
	if records[0].ID != "new" || records[1].ID != "old" {
		t.Errorf("order = [%s %s], want newest first", records[0].ID, records[1].ID)
	}
}

func TestOnPushDedup(t *testing.T) {
	m := NewNotificationMirror()

	if !m.OnPush(notif("n1", false)) {
		t.Error("first push should insert")
	}
	if m.OnPush(notif("n1", false)) {
		t.Error("duplicate push should be suppressed")
	}

	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if m.UnreadCount() != 1 {
		t.Errorf("UnreadCount() = %d, want 1 (duplicate must not double-count)", m.UnreadCount())
	}
	checkCounter(t, m)
}

func TestOnPushAfterPullSameID(t *testing.T) {
	m := NewNotificationMirror()

	if err := m.Pull(func() ([]api.Notification, error) {
		return []api.Notification{notif("n1", false)}, nil
	}); err != nil {
		t.Fatalf("Pull failed: %v", err)
	}

	// The push raced the pull and covers the same record.
	if m.OnPush(notif("n1", false)) {
		t.Error("push of a pulled id should be suppressed")
	}
	if m.Len() != 1 || m.UnreadCount() != 1 {
		t.Errorf("Len=%d UnreadCount=%d, want 1/1", m.Len(), m.UnreadCount())
	}
}

func TestOnPushReadRecord(t *testing.T) {
	m := NewNotificationMirror()
	m.OnPush(notif("n1", true))

	if m.UnreadCount() != 0 {
		t.Errorf("UnreadCount() = %d, want 0 for an already-read push", m.UnreadCount())
	}
}

func TestMarkAllReadSuccess(t *testing.T) {
	m := NewNotificationMirror()
	m.OnPush(notif("n1", false))
	m.OnPush(notif("n2", true))

	persisted := 0
	err := m.MarkAllRead(func() error {
		persisted++
		return nil
	})
	if err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	if persisted != 1 {
		t.Errorf("persist called %d times, want 1", persisted)
	}
	if m.UnreadCount() != 0 {
		t.Errorf("UnreadCount() = %d, want 0", m.UnreadCount())
	}
	for _, rec := range m.Records() {
		if !rec.IsRead {
			t.Errorf("record %s still unread", rec.ID)
		}
	}
}

func TestMarkAllReadRollsBackAfterRetries(t *testing.T) {
	m := NewNotificationMirror()
	m.SetPersistRetry(3, 0)
	m.OnPush(notif("n1", false))
	m.OnPush(notif("n2", true))
	m.OnPush(notif("n3", false))

	attempts := 0
	err := m.MarkAllRead(func() error {
		attempts++
		return stderrors.New("503")
	})
	if err == nil {
		t.Fatal("MarkAllRead should fail when persistence fails")
	}

	var cliErr *errors.CLIError
	if !stderrors.As(err, &cliErr) || cliErr.Type != errors.ErrorTypeMutation {
		t.Errorf("error = %v, want a mutation error", err)
	}

	if attempts != 3 {
		t.Errorf("persist attempted %d times, want 3", attempts)
	}

	// Prior state restored exactly.
	if m.UnreadCount() != 2 {
		t.Errorf("UnreadCount() = %d, want 2 after rollback", m.UnreadCount())
	}
	records := m.Records()
	wantRead := map[string]bool{"n1": false, "n2": true, "n3": false}
	for _, rec := range records {
		if rec.IsRead != wantRead[rec.ID] {
			t.Errorf("record %s IsRead = %v, want %v", rec.ID, rec.IsRead, wantRead[rec.ID])
		}
	}
	checkCounter(t, m)
}

func TestMarkAllReadNothingUnread(t *testing.T) {
	m := NewNotificationMirror()
	m.SetPersistRetry(3, 0)
	m.OnPush(notif("n1", true))

	attempts := 0
	err := m.MarkAllRead(func() error {
		attempts++
		return stderrors.New("503")
	})
	if err == nil {
		t.Fatal("persist error should surface")
	}
	if attempts != 1 {
		t.Errorf("with nothing unread persist should run once, ran %d times", attempts)
	}
	if m.UnreadCount() != 0 {
		t.Errorf("UnreadCount() = %d, want 0", m.UnreadCount())
	}
}

func TestClearMirror(t *testing.T) {
	m := NewNotificationMirror()
	m.OnPush(notif("n1", false))

	m.Clear()

	if m.Len() != 0 || m.UnreadCount() != 0 {
		t.Errorf("Len=%d UnreadCount=%d after Clear, want 0/0", m.Len(), m.UnreadCount())
	}

	// A cleared mirror accepts the same id again.
	if !m.OnPush(notif("n1", false)) {
		t.Error("push after Clear should insert")
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	m := NewNotificationMirror()
	m.OnPush(notif("n1", false))

	records := m.Records()
	records[0].IsRead = true

	if m.UnreadCount() != 1 {
		t.Error("mutating the returned slice must not affect the mirror")
	}
}

func TestCounterInvariantUnderMixedOps(t *testing.T) {
	m := NewNotificationMirror()
	m.SetPersistRetry(1, 0)

	for i := 0; i < 10; i++ {
		m.OnPush(notif(fmt.Sprintf("n%d", i), i%3 == 0))
		checkCounter(t, m)
	}

	_ = m.MarkAllRead(func() error { return nil })
	checkCounter(t, m)

	m.OnPush(notif("late", false))
	checkCounter(t, m)
}
