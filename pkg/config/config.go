package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

var configDir string
var configFilePath string
var credentialsPath string

// getConfigDir returns platform-specific config directory
func getConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		// Windows: %LOCALAPPDATA%\synapse\cli
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		return filepath.Join(appData, "synapse", "cli"), nil
	}

	// Unix-like (macOS, Linux): ~/.config/synapse/cli
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "synapse", "cli"), nil
}

// getSystemConfigPaths returns platform-specific system config paths
func getSystemConfigPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(os.Getenv("ProgramFiles"), "Synapse", "cli", "config.toml")}
	}

	return []string{
		"/etc/synapse/cli/config.toml",
		"/usr/local/etc/synapse/cli/config.toml",
	}
}

// Init initializes the configuration
func Init(configPath string) error {
	// Determine config directory
	var err error
	if configPath != "" {
		configDir = filepath.Dir(configPath)
		configFilePath = configPath
	} else {
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
		configFilePath = filepath.Join(configDir, "config.toml")
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	credentialsPath = filepath.Join(configDir, "credentials")

	// Setup Viper
	viper.SetConfigType("toml")

	setDefaults()

	// Environment overrides for non-default deployments
	viper.SetEnvPrefix("SYNAPSE")
	_ = viper.BindEnv("api.base_url", "SYNAPSE_API_URL")
	_ = viper.BindEnv("realtime.host", "SYNAPSE_REALTIME_HOST")
	_ = viper.BindEnv("realtime.port", "SYNAPSE_REALTIME_PORT")

	// Load system config first (if exists) - serves as foundation
	for _, sysConfigPath := range getSystemConfigPaths() {
		if _, err := os.Stat(sysConfigPath); err == nil {
			viper.SetConfigFile(sysConfigPath)
			_ = viper.ReadInConfig()
			break // Use first system config found
		}
	}

	// Load user config second (overrides system config)
	viper.SetConfigFile(configFilePath)
	_ = viper.ReadInConfig()

	return nil
}

func setDefaults() {
	// REST API
	viper.SetDefault("api.base_url", "http://localhost:8090")
	viper.SetDefault("api.timeout", 30)

	// Realtime transport
	viper.SetDefault("realtime.host", "localhost")
	viper.SetDefault("realtime.port", 8090)
	viper.SetDefault("realtime.path", "/api/v1/ws")
	viper.SetDefault("realtime.use_tls", false)
	viper.SetDefault("realtime.connect_timeout_ms", 15000)
	viper.SetDefault("realtime.heartbeat_interval_ms", 30000)
	viper.SetDefault("realtime.reconnect_base_delay_ms", 2000)
	viper.SetDefault("realtime.reconnect_max_delay_ms", 30000)
	viper.SetDefault("realtime.max_reconnect_attempts", 5)

	viper.SetDefault("output.format", "text")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", filepath.Join(configDir, "synapse-cli.log"))
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetString returns a string configuration value
func GetString(key string) string {
	value := viper.GetString(key)
	if key == "log.file" {
		return expandPath(value)
	}
	return value
}

// GetInt returns an int configuration value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool configuration value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// SetString sets a string configuration value
func SetString(key string, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// GetCredentialsPath returns the path to the credentials file
func GetCredentialsPath() string {
	return credentialsPath
}
