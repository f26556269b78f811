package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a main.toml into a temp dir and returns the dir
// with a trailing separator as ReadConfig expects.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600)
	require.NoError(t, err, "failed to write test config")

	return dir + string(filepath.Separator)
}

const baseConfig = `
Title = "GoShooterPortal"

[Webserver]
Port = 8080
URL = "http://localhost:8080"

[DB]
Host = "localhost"
Port = 5432
User = "portal"
Name = "portal"
GormEngine = "postgres"
`

func TestReadConfig(t *testing.T) {
	testCases := []struct {
		name          string
		content       string
		expectedError error
		wantErr       bool
	}{
		{
			name: "valid config with secret",
			content: baseConfig + `
[Auth]
JWTSecret = "unit-test-secret"
`,
		},
		{
			name:          "missing secret outside dev mode",
			content:       baseConfig,
			expectedError: ErrJWTSecretMissing,
			wantErr:       true,
		},
		{
			name:    "missing secret in dev mode generates one",
			content: "DevMode = true\n" + baseConfig,
		},
		{
			name: "missing webserver port",
			content: `
Title = "GoShooterPortal"

[Webserver]
URL = "http://localhost:8080"
`,
			expectedError: ErrWebServerPortCanNotBeZero,
			wantErr:       true,
		},
		{
			name: "missing webserver url",
			content: `
Title = "GoShooterPortal"

[Webserver]
Port = 8080
`,
			expectedError: ErrEmptyURL,
			wantErr:       true,
		},
		{
			name: "unknown gorm engine",
			content: `
Title = "GoShooterPortal"

[Webserver]
Port = 8080
URL = "http://localhost:8080"

[DB]
GormEngine = "oracle"

[Auth]
JWTSecret = "unit-test-secret"
`,
			expectedError: ErrUnknownGormEngine,
			wantErr:       true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTestConfig(t, tc.content)

			cfg, err := ReadConfig(path)

			if tc.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, cfg.Auth.JWTSecret)
			assert.Equal(t, time.Hour, cfg.Auth.TokenTTL.Duration)
			assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL.Duration)
			assert.Equal(t, "auth_token", cfg.Auth.CookieName)
			assert.Equal(t, 1024, cfg.Audit.QueueSize)
			assert.Equal(t, 5, cfg.Webserver.ShutDownTime)
		})
	}
}

// TTLs are written as Go duration strings in the TOML file.
func TestReadConfigDurationStrings(t *testing.T) {
	path := writeTestConfig(t, baseConfig+`
[Auth]
JWTSecret = "unit-test-secret"
TokenTTL = "30m"
SessionTTL = "72h"
`)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL.Duration)
	assert.Equal(t, 72*time.Hour, cfg.Auth.SessionTTL.Duration)
}

func TestReadConfigInvalidDuration(t *testing.T) {
	path := writeTestConfig(t, baseConfig+`
[Auth]
JWTSecret = "unit-test-secret"
TokenTTL = "ten minutes"
`)

	_, err := ReadConfig(path)
	require.Error(t, err)
}

func TestReadConfigJSONOverride(t *testing.T) {
	path := writeTestConfig(t, baseConfig+`
[Auth]
JWTSecret = "toml-secret"
`)

	t.Setenv("GO_SHOOTER_PORTAL_CONFIG_JSON", `{"Auth":{"JWTSecret":"env-secret","TokenTTL":"15m"}}`)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL.Duration)
}

func TestDumpConfig(t *testing.T) {
	path := writeTestConfig(t, baseConfig+`
[Auth]
JWTSecret = "unit-test-secret"
`)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	out, err := DumpConfig(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "GoShooterPortal")
}
