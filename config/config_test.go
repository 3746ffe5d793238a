package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 30*time.Minute, cfg.PasswordResetTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.SearchEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MongoDB")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("PASSWORD_RESET_TTL", "10m")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	assert.Equal(t, "mongodb", cfg.StoreDriver)
	assert.True(t, cfg.MongoTransactions)
	assert.Equal(t, 10*time.Minute, cfg.PasswordResetTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	require.Error(t, Load().Validate())

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_ENV", "production")
	require.Error(t, Load().Validate())

	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "b")
	require.NoError(t, Load().Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "edu", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/edu?sslmode=disable", cfg.PostgresDSN())
}
