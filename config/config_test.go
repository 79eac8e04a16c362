package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("MAIL_PROVIDER", "")
	t.Setenv("EMAIL_SENDER", "hello@example.com")
	t.Setenv("ADMIN_EMAIL", "")

	LoadConfig()

	assert.Equal(t, "3000", AppConfig.Port)
	assert.Equal(t, "postgres", AppConfig.DBDriver)
	assert.Equal(t, "none", AppConfig.MailProvider)
	assert.Equal(t, "sql", AppConfig.ContactStore)
	assert.Equal(t, "hello@example.com", AppConfig.AdminEmail)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SALT_ROUND", "12")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ENV", "development")

	LoadConfig()

	assert.Equal(t, "sqlite", AppConfig.DBDriver)
	assert.Equal(t, 12, AppConfig.SaltRound)
	assert.Equal(t, "admin@example.com", AppConfig.AdminEmail)
	assert.True(t, AppConfig.IsDevelopment())
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SALT_ROUND", "ten")
	assert.Equal(t, 10, getEnvInt("SALT_ROUND", 10))
}
