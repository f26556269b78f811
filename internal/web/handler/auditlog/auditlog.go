// Package auditlog implements the audit trail read endpoints. Every route
// requires the audit read permission; PII inside rendered snapshots is
// masked before it leaves the service.
package auditlog

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoShooterPortal/GoShooterPortal/internal/audit"
	"github.com/GoShooterPortal/GoShooterPortal/internal/auth"
	"github.com/GoShooterPortal/GoShooterPortal/internal/config"
	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
	"github.com/GoShooterPortal/GoShooterPortal/internal/privacy"
	"github.com/GoShooterPortal/GoShooterPortal/internal/session"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/guard"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/handler"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/authn"
)

const (
	// Path is the base path for the audit endpoints.
	Path = handler.APIPrefix + "/audit"
)

// Service is the audit handler service.
type Service struct {
	query *audit.Query
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	verifier *auth.Verifier,
	resolver *auth.Resolver,
	sessions *session.Manager,
	query *audit.Query,
) {
	if app == nil || cfg == nil || query == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.query = query

	authenticate := authn.Middleware(verifier, sessions, cfg.Auth.CookieName)
	requireAuditRead := guard.RequirePermissions(resolver, auth.PermAuditRead)

	app.Get(Path+"/recent", authenticate, requireAuditRead, s.Recent)
	app.Get(Path+"/stats", authenticate, requireAuditRead, s.Statistics)
	app.Get(Path+"/user/:id", authenticate, requireAuditRead, s.ByUser)
	app.Get(Path+"/user/:id/trail", authenticate, requireAuditRead, s.Trail)
	app.Get(Path+"/entity/:type", authenticate, requireAuditRead, s.ByEntity)
	app.Get(Path+"/action/:action", authenticate, requireAuditRead, s.ByAction)
}

// Recent returns the most recent entries.
func (s *Service) Recent(c *fiber.Ctx) error {
	logs, err := s.query.Recent(limitParam(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to query audit logs")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"logs": maskLogs(logs)})
}

// ByUser returns one user's entries.
func (s *Service) ByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.BadRequest(c, "Invalid user id")
	}

	logs, err := s.query.ByUser(userID, limitParam(c))
	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to query audit logs")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"logs": maskLogs(logs)})
}

// ByEntity returns entries for one entity type, optionally narrowed to a
// record via the ?id= query parameter.
func (s *Service) ByEntity(c *fiber.Ctx) error {
	logs, err := s.query.ByEntity(c.Params("type"), c.Query("id"), limitParam(c))
	if err != nil {
		log.Error().Err(err).Str("entity_type", c.Params("type")).Msg("failed to query audit logs")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"logs": maskLogs(logs)})
}

// ByAction returns entries of one action kind.
func (s *Service) ByAction(c *fiber.Ctx) error {
	action := models.AuditAction(c.Params("action"))

	logs, err := s.query.ByAction(action, limitParam(c))
	if err != nil {
		log.Error().Err(err).Str("action", string(action)).Msg("failed to query audit logs")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"logs": maskLogs(logs)})
}

// Statistics returns aggregate counts over the trailing window given by
// ?days= (default 30).
func (s *Service) Statistics(c *fiber.Ctx) error {
	days := c.QueryInt("days")

	stats, err := s.query.GetStatistics(days)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute audit statistics")
		return handler.Internal(c)
	}

	return c.JSON(stats)
}

// Trail returns the complete per-user audit summary.
func (s *Service) Trail(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.BadRequest(c, "Invalid user id")
	}

	trail, err := s.query.UserTrail(userID, limitParam(c))
	if err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to build user trail")
		return handler.Internal(c)
	}

	trail.Recent = maskLogs(trail.Recent)

	return c.JSON(trail)
}

func limitParam(c *fiber.Ctx) int {
	return c.QueryInt("limit")
}

// maskLogs redacts PII fields inside the value snapshots in place. The
// slice elements are copies from the query layer, never live DB rows.
func maskLogs(logs []models.AuditLog) []models.AuditLog {
	for i := range logs {
		logs[i].OldValues = maskValues(logs[i].OldValues)
		logs[i].NewValues = maskValues(logs[i].NewValues)
	}

	return logs
}

func maskValues(values models.ValueMap) models.ValueMap {
	if values == nil {
		return nil
	}

	masked := make(models.ValueMap, len(values))

	for key, value := range values {
		str, ok := value.(string)
		if !ok {
			masked[key] = value
			continue
		}

		switch key {
		case "email":
			masked[key] = privacy.MaskEmail(str)
		case "phone":
			masked[key] = privacy.MaskPhone(str)
		default:
			masked[key] = value
		}
	}

	return masked
}
