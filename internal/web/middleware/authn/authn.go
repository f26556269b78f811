// Package authn implements the authenticate middleware: it turns a bearer
// token into a Principal before any guard or handler runs.
package authn

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoShooterPortal/GoShooterPortal/internal/auth"
	"github.com/GoShooterPortal/GoShooterPortal/internal/session"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/handler"
)

const (
	principalKey = "principal"
	sessionKey   = "session_id"

	bearerPrefix = "Bearer "
)

// Middleware authenticates a request. The Authorization header is the
// primary transport; the HttpOnly cookie set at login is the browser
// fallback. Both verify through the same shared Verifier, so there is a
// single signing secret in play.
//
// When a session manager is supplied, the token must additionally map to
// a live, non-revoked session (defense in depth beyond the signature),
// and its activity timestamp is refreshed.
func Middleware(verifier *auth.Verifier, sessions *session.Manager, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c, cookieName)
		if raw == "" {
			return handler.Unauthenticated(c, "Missing bearer token")
		}

		principal, err := verifier.Verify(raw)
		if err != nil {
			return handler.Unauthenticated(c, "Invalid or expired token")
		}

		if sessions != nil {
			sess, err := sessions.FindByToken(raw)
			if err != nil {
				log.Error().Err(err).Uint64("user_id", principal.ID).Msg("session lookup failed")
				return handler.Internal(c)
			}

			if sess == nil || !sess.Valid() {
				return handler.Unauthenticated(c, "Session revoked or expired")
			}

			if err := sessions.UpdateActivity(sess.ID); err != nil {
				// liveness signal only, never fail the request over it
				log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to update session activity")
			}

			c.Locals(sessionKey, sess.ID)
		}

		c.Locals(principalKey, principal)

		return c.Next()
	}
}

// extractToken prefers the Authorization header over the cookie.
func extractToken(c *fiber.Ctx, cookieName string) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}

	if cookieName != "" {
		return c.Cookies(cookieName)
	}

	return ""
}

// PrincipalFromCtx returns the authenticated principal, or nil on public
// routes that never ran the middleware.
func PrincipalFromCtx(c *fiber.Ctx) *auth.Principal {
	principal, _ := c.Locals(principalKey).(*auth.Principal)
	return principal
}

// SessionIDFromCtx returns the live session id attached by the middleware.
func SessionIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionKey).(string)
	return id
}
