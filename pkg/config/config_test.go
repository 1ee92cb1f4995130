package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg := LoadConfig()
	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, "", cfg.LogLevel)
	assert.Equal(t, int64(defaultMaxUploadBytes), cfg.MaxUploadBytes)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg := LoadConfig()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
}

func TestLoadConfigIgnoresBadUploadLimit(t *testing.T) {
	for _, v := range []string{"not-a-number", "-5", "0"} {
		t.Setenv("MAX_UPLOAD_BYTES", v)
		cfg := LoadConfig()
		assert.Equal(t, int64(defaultMaxUploadBytes), cfg.MaxUploadBytes, "value %q", v)
	}
}
