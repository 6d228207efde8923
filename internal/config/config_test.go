package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LMS_BASE_URL", "https://lms.example.com")

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "https://lms.example.com", cfg.Lms.BaseURL)
	assert.Equal(t, "https://lms.example.com/logout", cfg.Lms.LogoutURL)
	assert.Equal(t, "JWT", cfg.Lms.TokenType)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "learner-account-be", cfg.Tracing.ServiceName)
	assert.Equal(t, "lms.example.com", cfg.Tracing.LmsHost)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("D_GO", "90s")
	t.Setenv("D_SECS", "15")
	t.Setenv("D_BAD", "soon")

	assert.Equal(t, 90*time.Second, getEnvAsDuration("D_GO", time.Minute))
	assert.Equal(t, 15*time.Second, getEnvAsDuration("D_SECS", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsDuration("D_BAD", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsDuration("D_UNSET", time.Minute))
}
