package realtime

import (
	"sync"
)

var (
	instance *Client
	once     sync.Once
)

// GetClient returns the singleton realtime client instance
func GetClient(config ...Config) *Client {
	once.Do(func() {
		var cfg Config
		if len(config) > 0 {
			cfg = config[0]
		} else {
			cfg = DefaultConfig()
		}
		instance = NewClient(cfg)
	})
	return instance
}
