package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("REDIS_TTL_SEC", "60")
	os.Setenv("AI_MODEL", "test-model")
	os.Setenv("OCR_LANGUAGE", "deu")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("REDIS_TTL_SEC")
		os.Unsetenv("AI_MODEL")
		os.Unsetenv("OCR_LANGUAGE")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 60, cfg.Redis.TTLSec)
	assert.Equal(t, "test-model", cfg.AI.Model)
	assert.Equal(t, "deu", cfg.OCR.Language)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("AI_BASE_URL")
	os.Unsetenv("OCR_LANGUAGE")
	os.Unsetenv("REDIS_ADDR")

	cfg := Load()

	assert.Equal(t, "https://api.openai.com/v1", cfg.AI.BaseURL)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "42")
	assert.Equal(t, 42, getEnvInt(key, 1))

	os.Setenv(key, "not-a-number")
	assert.Equal(t, 1, getEnvInt(key, 1))

	os.Unsetenv(key)
	assert.Equal(t, 1, getEnvInt(key, 1))
}
