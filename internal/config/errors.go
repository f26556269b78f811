package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrJWTSecretMissing error if auth.jwtsecret is empty outside dev mode.
	// A silently defaulted signing secret must never reach production.
	ErrJWTSecretMissing = errors.New("toml config auth.jwtsecret can not be empty outside dev mode")

	// ErrUnknownGormEngine error if db.gormengine is not a supported driver.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine must be postgres or mysql")
)
