// Package auditlog implements the app-wide audit interceptor.
//
// After a successful response on a mutating verb it derives the action
// kind from the HTTP method and the target entity from the URL path, and
// dispatches a fire-and-forget entry. Handlers that record their own,
// more precise entry call MarkRecorded and take precedence over this
// coarse inference. GET traffic is only recorded where a handler opts in
// with an explicit entry; failed requests and guard rejections are not
// audited.
package auditlog

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GoShooterPortal/GoShooterPortal/internal/audit"
	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/handler"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/authn"
)

const recordedKey = "audit_recorded"

// MarkRecorded flags the request as already audited by its handler.
// Handler entries carry the precise action and record id, so the
// interceptor skips its coarse entry and every successful mutation
// produces exactly one row.
func MarkRecorded(c *fiber.Ctx) {
	c.Locals(recordedKey, true)
}

func recorded(c *fiber.Ctx) bool {
	flagged, _ := c.Locals(recordedKey).(bool)
	return flagged
}

// actionForMethod maps the HTTP verb to the recorded action kind.
func actionForMethod(method string) (models.AuditAction, bool) {
	switch method {
	case fiber.MethodPost:
		return models.AuditActionCreate, true
	case fiber.MethodPut, fiber.MethodPatch:
		return models.AuditActionUpdate, true
	case fiber.MethodDelete:
		return models.AuditActionDelete, true
	default:
		return "", false
	}
}

// ExtractEntityType takes the second-to-last path segment, so record
// paths resolve to their collection: "/api/v1/news/42" -> "news". A
// single-segment path falls back to that segment.
func ExtractEntityType(path string) string {
	parts := make([]string, 0, 8) //nolint:mnd

	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}

	switch len(parts) {
	case 0:
		return "unknown"
	case 1:
		return parts[0]
	default:
		return parts[len(parts)-2]
	}
}

// Middleware records one audit entry per successful mutating request.
func Middleware(recorder *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		action, mutating := actionForMethod(c.Method())
		if !mutating || recorded(c) || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		entry := audit.Entry{
			Action:      action,
			EntityType:  ExtractEntityType(c.Path()),
			IPAddress:   handler.ClientIP(c),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
			RequestID:   requestID(c),
			Description: c.Method() + " " + c.Path(),
		}

		if principal := authn.PrincipalFromCtx(c); principal != nil {
			userID := principal.ID
			entry.UserID = &userID
		}

		recorder.Log(entry)

		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if id := c.Get(fiber.HeaderXRequestID); id != "" {
		return id
	}

	return uuid.NewString()
}
