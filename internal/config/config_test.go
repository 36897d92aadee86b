package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "weddings")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, StoreMySQL, c.StoreDriver)
	assert.True(t, c.RequireIdentity)
	assert.Equal(t, 5*time.Minute, c.AvailabilityTTL)
	assert.Equal(t, "127.0.0.1", c.DB.Host)
	assert.Equal(t, 25, c.DB.MaxOpenConns)
	assert.Equal(t, 15*time.Minute, c.JWT.AccessTTL)
	assert.Equal(t, "reservations", c.RabbitMQ.Exchange)
	assert.Equal(t, map[string]bool{"GET": true}, c.Cache.MethodSet())
	assert.Equal(t, time.UTC.String(), c.Location().String())
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("BOOKING_REQUIRE_IDENTITY", "false")
	t.Setenv("APP_TZ", "Europe/Skopje")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "1m")

	c, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, c.StoreDriver)
	assert.False(t, c.RequireIdentity)
	assert.Equal(t, "Europe/Skopje", c.Location().String())
	assert.Equal(t, "cache:6380", c.Redis.Address())
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, c.Cache.MethodSet())
	assert.Equal(t, 5*time.Minute, c.RateLimit.TTL, "ttl is raised to five refill intervals")
}

func TestFromEnv_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "memory")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_MySQLNeedsCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "DB_USER")
}

func TestFromEnv_UnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "postgres")
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{User: "app", Pass: "pw", Host: "db", Port: "3306", Name: "weddings"}
	assert.Equal(t, "app:pw@tcp(db:3306)/weddings?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=true", c.DSN())

	c.Pass = ""
	assert.Contains(t, c.DSN(), "app@tcp(db:3306)")
}

func TestLoadSections(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "weddings")
	t.Setenv("DB_PORT", "3307")
	db, err := LoadDB()
	require.NoError(t, err)
	assert.Equal(t, "3307", db.Port)

	t.Setenv("JWT_SECRET", "")
	_, err = LoadJWT()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "abc")
	t.Setenv("JWT_ACCESS_TTL", "1h")
	j, err := LoadJWT()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, j.AccessTTL)
}
