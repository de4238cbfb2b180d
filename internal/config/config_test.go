package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", ":8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "dave")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("DB_NAME", "dave")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("PERENUAL_API_KEY", "pk-123")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "hunter2", cfg.DBPassword)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)

	// дефолты
	assert.Equal(t, "dave", cfg.DBScheme)
	assert.Equal(t, "dave-backend", cfg.AuthIssuer)
	assert.Equal(t, 60, cfg.AuthTokenTTLMin)
	assert.Equal(t, 60, cfg.PlantListTTL)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DBUser: "dave", DBPassword: "hunter2", DBHost: "db", DBPort: 5432, DBName: "plants"}
	assert.Equal(t, "postgres://dave:hunter2@db:5432/plants?sslmode=disable", cfg.GetDSN())
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := &Config{
		DBPassword:     "hunter2",
		S3SecretKey:    "s3-secret",
		AuthJWTSecret:  "jwt-secret",
		PerenualAPIKey: "pk-123",
	}
	s := cfg.String()

	assert.NotContains(t, s, "hunter2")
	assert.NotContains(t, s, "s3-secret")
	assert.NotContains(t, s, "jwt-secret")
	assert.NotContains(t, s, "pk-123")
	assert.True(t, strings.Contains(s, "********"))
}
