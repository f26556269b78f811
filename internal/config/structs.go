package config

import (
	"github.com/GoShooterPortal/GoShooterPortal/internal/logger"
)

// Auth holds token signing and session lifecycle settings.
type Auth struct {
	// JWTSecret signs and verifies bearer tokens. The issuing side (login)
	// and every verifying surface consume this single value. An empty
	// secret is a fatal configuration error outside dev mode.
	JWTSecret string

	// TokenTTL is the bearer token lifetime, e.g. "1h".
	TokenTTL Duration

	// SessionTTL is the server-side session record lifetime, e.g. "168h".
	SessionTTL Duration

	// CookieName is the HttpOnly cookie mirroring the bearer token for
	// browser clients.
	CookieName string
}

// Audit holds audit recorder settings.
type Audit struct {
	// QueueSize bounds the in-flight audit write queue. Entries beyond the
	// bound are dropped rather than blocking a request.
	QueueSize int
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Audit     Audit
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
