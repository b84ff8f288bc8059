package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplySecretOverrides(t *testing.T) {
	var cfg Configuration
	cfg.Email.User = "mailer@bock.com"
	cfg.Email.Password = "from-toml"
	cfg.Auth.Key = "configuration/hs256.dev.json"

	// Nothing set in the environment: the toml values stand
	applySecretOverrides(&cfg)
	assert.Equal(t, "mailer@bock.com", cfg.Email.User)
	assert.Equal(t, "from-toml", cfg.Email.Password)
	assert.Equal(t, "configuration/hs256.dev.json", cfg.Auth.Key)

	// Environment wins over the file
	t.Setenv("BOCKDOCS_SMTP_USER", "ops@bock.com")
	t.Setenv("BOCKDOCS_SMTP_PASSWORD", "from-env")
	t.Setenv("BOCKDOCS_JWT_KEY_FILE", "/run/secrets/hs256.json")

	applySecretOverrides(&cfg)
	assert.Equal(t, "ops@bock.com", cfg.Email.User)
	assert.Equal(t, "from-env", cfg.Email.Password)
	assert.Equal(t, "/run/secrets/hs256.json", cfg.Auth.Key)
}
