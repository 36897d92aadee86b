package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is
// disabled.  Methods lists the HTTP methods to cache (e.g. GET, HEAD).
// KeyStrategy determines which parts of the request contribute to the cache
// key.  Prefix and MaxBodyBytes control namespacing and the maximum size of
// responses to cache.
type CacheConfig struct {
	Enabled      bool          `envconfig:"ENABLED" default:"true"`
	Methods      []string      `envconfig:"METHODS" default:"GET"`
	TTL          time.Duration `envconfig:"TTL" default:"30s"`
	KeyStrategy  string        `envconfig:"KEY_STRATEGY" default:"route_query"`
	Prefix       string        `envconfig:"PREFIX" default:"cache"`
	MaxBodyBytes int           `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

// MethodSet returns Methods upper-cased as a lookup set.
func (c CacheConfig) MethodSet() map[string]bool {
	m := map[string]bool{}
	for _, p := range c.Methods {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
