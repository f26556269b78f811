package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoShooterPortal/GoShooterPortal/internal/web/handler"
	auditmw "github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/auditlog"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/authn"
)

// ConsentRequest is the payload for recording a consent change.
type ConsentRequest struct {
	ConsentType string `json:"consent_type" validate:"required,max=100"`
	Granted     bool   `json:"granted"`
}

// DeletionRequest carries the reason for a data deletion request.
type DeletionRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// Consent records a consent grant or withdrawal in the audit trail.
func (s *Service) Consent(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	in := new(ConsentRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	s.recorder.LogConsentChange(
		principal.ID,
		in.ConsentType,
		in.Granted,
		handler.ClientIP(c),
		c.Get(fiber.HeaderUserAgent),
	)
	auditmw.MarkRecorded(c)

	return c.JSON(fiber.Map{"message": "Consent recorded"})
}

// RequestExport records a data export request. The export itself is
// produced out of band; the trail entry is the receipt.
func (s *Service) RequestExport(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	s.recorder.LogDataExport(principal.ID, handler.ClientIP(c), c.Get(fiber.HeaderUserAgent))
	auditmw.MarkRecorded(c)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Export request recorded"})
}

// RequestDeletion records a right-to-be-forgotten request for manual
// processing.
func (s *Service) RequestDeletion(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	in := new(DeletionRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	s.recorder.LogDataDeletion(principal.ID, in.Reason, handler.ClientIP(c), c.Get(fiber.HeaderUserAgent))
	auditmw.MarkRecorded(c)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Deletion request recorded"})
}
