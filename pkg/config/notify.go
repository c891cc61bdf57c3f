package config

import (
	"fmt"
	"time"
)

// NotifyConfig configures the user notification channel.
type NotifyConfig struct {
	// TTL is how long a notification stays live before it auto-dismisses.
	TTL time.Duration `koanf:"ttl"`
}

func (c *NotifyConfig) Validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("invalid notification TTL: %v", c.TTL)
	}
	return nil
}
