// Package sessions implements the self-service session endpoints: a user
// can list their own devices, revoke a single session, log out everywhere
// else, and ask for the suspicion signal.
package sessions

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoShooterPortal/GoShooterPortal/internal/auth"
	"github.com/GoShooterPortal/GoShooterPortal/internal/config"
	"github.com/GoShooterPortal/GoShooterPortal/internal/session"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/handler"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/authn"
)

const (
	// Path is the base path for the session endpoints.
	Path = handler.APIPrefix + "/sessions"
)

// SessionView is the user-facing projection of a session record. The
// token hash is never rendered.
type SessionView struct {
	ID             string     `json:"id"`
	Device         string     `json:"device"`
	IPAddress      string     `json:"ip_address"`
	Location       string     `json:"location,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
	Current        bool       `json:"current"`
}

// Service is the session handler service.
type Service struct {
	sessions *session.Manager
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Every endpoint is scoped to the authenticated
// principal's own sessions.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	verifier *auth.Verifier,
	sessions *session.Manager,
) {
	if app == nil || cfg == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.sessions = sessions

	authenticate := authn.Middleware(verifier, sessions, cfg.Auth.CookieName)

	app.Get(Path, authenticate, s.List)
	app.Get(Path+"/suspicious", authenticate, s.Suspicious)
	app.Post(Path+"/revoke-others", authenticate, s.RevokeOthers)
	app.Delete(Path+"/:id", authenticate, s.Revoke)
}

// List returns the principal's active sessions, newest first, with the
// current one flagged.
func (s *Service) List(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)
	currentID := authn.SessionIDFromCtx(c)

	active, err := s.sessions.ActiveSessions(principal.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", principal.ID).Msg("failed to list sessions")
		return handler.Internal(c)
	}

	views := make([]SessionView, 0, len(active))

	for i := range active {
		views = append(views, SessionView{
			ID:             active[i].ID,
			Device:         active[i].Device,
			IPAddress:      active[i].IPAddress,
			Location:       active[i].Location,
			CreatedAt:      active[i].CreatedAt,
			LastActivityAt: active[i].LastActivityAt,
			ExpiresAt:      active[i].ExpiresAt,
			Current:        active[i].ID == currentID,
		})
	}

	return c.JSON(fiber.Map{"sessions": views})
}

// Revoke deactivates one of the principal's own sessions. Ids that do not
// exist or belong to someone else come back as the same success response,
// so the endpoint can not be used to probe for session existence.
func (s *Service) Revoke(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)
	sessionID := c.Params("id")

	if err := s.sessions.RevokeOwned(principal.ID, sessionID); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to revoke session")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"message": "Session revoked"})
}

// RevokeOthers logs the principal out everywhere except the current
// device.
func (s *Service) RevokeOthers(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)
	currentID := authn.SessionIDFromCtx(c)

	if err := s.sessions.RevokeOthers(principal.ID, currentID); err != nil {
		log.Error().Err(err).Uint64("user_id", principal.ID).Msg("failed to revoke other sessions")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"message": "Other sessions revoked"})
}

// Suspicious reports the advisory anomaly signal for the principal's
// account.
func (s *Service) Suspicious(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	suspicious, err := s.sessions.DetectSuspiciousActivity(principal.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", principal.ID).Msg("failed to evaluate session activity")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"suspicious": suspicious})
}
