package config

import "time"

// RateLimitConfig configures the Redis token bucket in front of the
// reservation and inquiry endpoints.
type RateLimitConfig struct {
	Enabled        bool          `envconfig:"ENABLED" default:"true"`
	Capacity       int           `envconfig:"CAPACITY" default:"20"`
	RefillTokens   int           `envconfig:"REFILL_TOKENS" default:"1"`
	RefillInterval time.Duration `envconfig:"REFILL_INTERVAL" default:"3s"`
	TTL            time.Duration `envconfig:"TTL" default:"10m"`
	KeyStrategy    string        `envconfig:"KEY_STRATEGY" default:"ip_user_route"`
	Prefix         string        `envconfig:"PREFIX" default:"rl"`
	Debug          bool          `envconfig:"DEBUG"`
}

// normalize clamps values to sane minimums.  Keys must outlive a full
// refill so TTL is at least five refill intervals.
func (c *RateLimitConfig) normalize() {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
}
