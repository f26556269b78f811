// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/BurntSushi/toml"
)

const (
	defaultTokenTTL   = time.Hour
	defaultSessionTTL = 7 * 24 * time.Hour
	defaultCookieName = "auth_token"
	defaultAuditQueue = 1024
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("GO_SHOOTER_PORTAL_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and apply defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	switch c.DB.GormEngine {
	case "", "postgres", "mysql":
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if err := validateAuth(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	if c.Audit.QueueSize <= 0 {
		c.Audit.QueueSize = defaultAuditQueue
	}

	return nil
}

// validateAuth enforces the signing secret rule and fills lifecycle defaults.
// There is deliberately no production fallback secret: a process without a
// configured secret must not start.
func validateAuth(c *Config) error {
	if c.Auth.JWTSecret == "" {
		if !c.DevMode {
			return ErrJWTSecretMissing
		}

		// Dev convenience only. Tokens do not survive a restart.
		c.Auth.JWTSecret = generateDevSecret()
		log.Warn().Msg("auth.jwtsecret is empty: generated a throwaway dev secret, all tokens invalidate on restart")
	}

	if c.Auth.TokenTTL.Duration == 0 {
		c.Auth.TokenTTL.Duration = defaultTokenTTL
	}

	if c.Auth.SessionTTL.Duration == 0 {
		c.Auth.SessionTTL.Duration = defaultSessionTTL
	}

	if c.Auth.CookieName == "" {
		c.Auth.CookieName = defaultCookieName
	}

	return nil
}

func generateDevSecret() string {
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("failed to generate dev secret")
	}

	return hex.EncodeToString(b)
}
