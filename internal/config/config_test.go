package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parkctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
[parkanizer]
username = "me@example.com"
password = "hunter2"
`

func TestLoadMinimalConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "https://share.parkanizer.com/api", cfg.Parkanizer.BaseURL)
	assert.Equal(t, "me@example.com", cfg.Parkanizer.Username)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "0 6 * * *", cfg.Watch.Schedule)
	assert.NotEmpty(t, cfg.Secrets.Path)
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[parkanizer]
username = "me@example.com"
password = "hunter2"

[booking]
zone = "Garage"
spots = ["A1", "A2", "*"]
look_ahead = 3

[history]
enabled = true
path = "/tmp/parkctl-history"

[notifiers.smtp]
host = "smtp.example.com"
port = 465
from = "bot@example.com"
to = ["me@example.com"]
use_tls = true

[watch]
schedule = "30 5 * * 1-5"

[logging]
level = "debug"
`))
	require.NoError(t, err)

	assert.Equal(t, "Garage", cfg.Booking.Zone)
	assert.Equal(t, []string{"A1", "A2", "*"}, cfg.Booking.Spots)
	assert.Equal(t, 3, cfg.Booking.LookAhead)
	assert.True(t, cfg.History.Enabled)
	require.NotNil(t, cfg.Notifiers.SMTP)
	assert.Equal(t, "smtp.example.com", cfg.Notifiers.SMTP.Host)
	assert.Equal(t, []string{"me@example.com"}, cfg.Notifiers.SMTP.To)
	assert.Equal(t, "30 5 * * 1-5", cfg.Watch.Schedule)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PARKANIZER_USER", "env@example.com")
	t.Setenv("PARKANIZER_PASSWORD", "env-secret")
	t.Setenv("PARKCTL_LOG_LEVEL", "WARN")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "env@example.com", cfg.Parkanizer.Username)
	assert.Equal(t, "env-secret", cfg.Parkanizer.Password)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestCredentialsFromEnvOnly(t *testing.T) {
	t.Setenv("PARKANIZER_USER", "env@example.com")
	t.Setenv("PARKANIZER_PASSWORD", "env-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", cfg.Parkanizer.Username)
}

func TestMissingCredentialsRejected(t *testing.T) {
	_, err := Load(writeConfig(t, `
[parkanizer]
username = "me@example.com"
`))
	assert.Error(t, err)
}

func TestInvalidUsernameRejected(t *testing.T) {
	_, err := Load(writeConfig(t, `
[parkanizer]
username = "not-an-email"
password = "hunter2"
`))
	assert.Error(t, err)
}

func TestInvalidLogLevelRejected(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
[logging]
level = "loud"
`))
	assert.Error(t, err)
}

func TestSecretKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[secrets]
hash_key = "aGFzaC1rZXktaGFzaC1rZXktaGFzaC1rZXktISEh"
block_key = "YmxvY2sta2V5LWJsb2NrLWtleS1ibG9jay1rISEh"
`))
	require.NoError(t, err)

	hash, block, err := cfg.SecretKeys()
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEmpty(t, block)
}

func TestSecretKeysRequireBoth(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
[secrets]
hash_key = "aGFzaA=="
`))
	require.NoError(t, err)

	_, _, err = cfg.SecretKeys()
	assert.Error(t, err)
}

func TestSecretKeysAbsentMeansDerive(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	hash, block, err := cfg.SecretKeys()
	require.NoError(t, err)
	assert.Nil(t, hash)
	assert.Nil(t, block)
}

func TestMissingConfigFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
