package config

// Redis is used for the availability cache, distributed rate limiting and
// HTTP response caching.  If the connection fails during startup,
// NewRedisClient returns nil and callers degrade gracefully by disabling
// those features.

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig is read from REDIS_* variables.  REDIS_HOST and REDIS_PORT
// take precedence over REDIS_ADDR when both are set.
type RedisConfig struct {
	Enabled  bool   `envconfig:"ENABLED" default:"true"`
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
	TLS      bool   `envconfig:"TLS"`
}

// Address resolves the host:port to dial.
func (c RedisConfig) Address() string {
	if c.Host != "" && c.Port != "" {
		return c.Host + ":" + c.Port
	}
	if c.Addr == "" {
		return "localhost:6379"
	}
	return c.Addr
}

// NewRedisClient instantiates a Redis client and pings it with a short
// timeout.  The returned client is nil when Redis is disabled or cannot be
// reached.
func NewRedisClient(c RedisConfig) *redis.Client {
	if !c.Enabled {
		return nil
	}
	var tlsConf *tls.Config
	if c.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      c.Address(),
		Password:  c.Password,
		DB:        c.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
