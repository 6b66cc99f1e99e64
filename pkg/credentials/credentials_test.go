package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Pradeep-10x/synapse-cli/pkg/config"
)

func initTestConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	if err := config.Init(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("config.Init failed: %v", err)
	}
}

func testCreds() *Credentials {
	return &Credentials{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
		UserID:       "u1",
		Username:     "zoe",
		Email:        "zoe@example.com",
		DisplayName:  "Zoe",
	}
}

func TestLoadMissingFile(t *testing.T) {
	initTestConfig(t)

	creds, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if creds != nil {
		t.Error("Load should return nil when no credentials exist")
	}
}

func TestSaveAndLoad(t *testing.T) {
	initTestConfig(t)

	want := testCreds()
	if err := Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil after Save")
	}

	if got.AccessToken != want.AccessToken {
		t.Errorf("AccessToken = %q, want %q", got.AccessToken, want.AccessToken)
	}
	if got.RefreshToken != want.RefreshToken {
		t.Errorf("RefreshToken = %q, want %q", got.RefreshToken, want.RefreshToken)
	}
	if got.Username != want.Username {
		t.Errorf("Username = %q, want %q", got.Username, want.Username)
	}
	if got.UserID != want.UserID {
		t.Errorf("UserID = %q, want %q", got.UserID, want.UserID)
	}
}

func TestSavePermissions(t *testing.T) {
	initTestConfig(t)

	if err := Save(testCreds()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(config.GetCredentialsPath())
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credentials file mode = %o, want 0600", perm)
	}
}

func TestDelete(t *testing.T) {
	initTestConfig(t)

	if err := Save(testCreds()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	creds, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if creds != nil {
		t.Error("credentials still present after Delete")
	}
}

func TestDeleteMissingFile(t *testing.T) {
	initTestConfig(t)

	if err := Delete(); err != nil {
		t.Errorf("Delete of missing file should be a no-op, got %v", err)
	}
}

func TestIsExpired(t *testing.T) {
	fresh := &Credentials{ExpiresAt: time.Now().Add(time.Hour)}
	if fresh.IsExpired() {
		t.Error("future expiry should not be expired")
	}

	stale := &Credentials{ExpiresAt: time.Now().Add(-time.Hour)}
	if !stale.IsExpired() {
		t.Error("past expiry should be expired")
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"valid", Credentials{AccessToken: "t", ExpiresAt: time.Now().Add(time.Hour)}, true},
		{"expired", Credentials{AccessToken: "t", ExpiresAt: time.Now().Add(-time.Hour)}, false},
		{"no token", Credentials{ExpiresAt: time.Now().Add(time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
