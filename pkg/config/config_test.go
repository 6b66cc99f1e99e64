package config

import (
	"os"
	"path/filepath"
	"testing"
)

func initTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := Init(configPath); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return dir
}

func TestInitCreatesConfigDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sub", "config.toml")

	if err := Init(nested); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "sub")); err != nil {
		t.Errorf("config dir was not created: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	initTestConfig(t)

	tests := []struct {
		key  string
		want string
	}{
		{"api.base_url", "http://localhost:8090"},
		{"realtime.host", "localhost"},
		{"realtime.path", "/api/v1/ws"},
		{"output.format", "text"},
		{"log.level", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetString(tt.key); got != tt.want {
				t.Errorf("GetString(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestIntDefaults(t *testing.T) {
	initTestConfig(t)

	tests := []struct {
		key  string
		want int
	}{
		{"api.timeout", 30},
		{"realtime.port", 8090},
		{"realtime.heartbeat_interval_ms", 30000},
		{"realtime.reconnect_base_delay_ms", 2000},
		{"realtime.reconnect_max_delay_ms", 30000},
		{"realtime.max_reconnect_attempts", 5},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := GetInt(tt.key); got != tt.want {
				t.Errorf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetBool(t *testing.T) {
	initTestConfig(t)

	if GetBool("realtime.use_tls") {
		t.Error("realtime.use_tls should default to false")
	}
}

func TestSetStringPersists(t *testing.T) {
	dir := initTestConfig(t)

	if err := SetString("api.base_url", "https://api.example.com"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	if got := GetString("api.base_url"); got != "https://api.example.com" {
		t.Errorf("GetString after SetString = %q", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("config file is empty after SetString")
	}
}

func TestCredentialsPath(t *testing.T) {
	dir := initTestConfig(t)

	want := filepath.Join(dir, "credentials")
	if got := GetCredentialsPath(); got != want {
		t.Errorf("GetCredentialsPath() = %q, want %q", got, want)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SYNAPSE_API_URL", "https://staging.example.com")
	initTestConfig(t)

	if got := GetString("api.base_url"); got != "https://staging.example.com" {
		t.Errorf("env override ignored, got %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	got := expandPath("~/logs/cli.log")
	want := filepath.Join(home, "logs", "cli.log")
	if got != want {
		t.Errorf("expandPath = %q, want %q", got, want)
	}

	if got := expandPath("/absolute/path"); got != "/absolute/path" {
		t.Errorf("absolute path should pass through, got %q", got)
	}
}
