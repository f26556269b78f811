// Package auth implements the authentication endpoints: register, login,
// logout, profile, role listing and assignment, and two-factor management.
package auth

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoShooterPortal/GoShooterPortal/internal/audit"
	coreauth "github.com/GoShooterPortal/GoShooterPortal/internal/auth"
	"github.com/GoShooterPortal/GoShooterPortal/internal/config"
	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
	"github.com/GoShooterPortal/GoShooterPortal/internal/session"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/guard"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/handler"
	auditmw "github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/auditlog"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/authn"
)

const (
	// Path is the base path for the authentication endpoints.
	Path = handler.APIPrefix + "/auth"
)

// Service is the authentication handler service.
type Service struct {
	cfg       *config.Config
	auth      *coreauth.Service
	verifier  *coreauth.Verifier
	resolver  *coreauth.Resolver
	sessions  *session.Manager
	recorder  *audit.Recorder
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	authService *coreauth.Service,
	verifier *coreauth.Verifier,
	resolver *coreauth.Resolver,
	sessions *session.Manager,
	recorder *audit.Recorder,
) {
	if app == nil || cfg == nil || authService == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.auth = authService
	s.verifier = verifier
	s.resolver = resolver
	s.sessions = sessions
	s.recorder = recorder
	s.validator = validator.New()

	authenticate := authn.Middleware(verifier, sessions, cfg.Auth.CookieName)

	// public routes, no authentication
	app.Post(Path+"/register", s.Register)
	app.Post(Path+"/login", s.Login)

	// authenticated routes
	app.Post(Path+"/logout", authenticate, s.Logout)
	app.Get(Path+"/profile", authenticate, s.Profile)
	app.Get(Path+"/roles", authenticate, s.Roles)
	app.Get(Path+"/permissions", authenticate, s.Permissions)

	// two-factor management
	app.Post(Path+"/2fa/enroll", authenticate, s.EnrollTOTP)
	app.Post(Path+"/2fa/activate", authenticate, s.ActivateTOTP)
	app.Post(Path+"/2fa/disable", authenticate, s.DisableTOTP)

	// data-protection requests
	app.Post(Path+"/privacy/consent", authenticate, s.Consent)
	app.Post(Path+"/privacy/export", authenticate, s.RequestExport)
	app.Post(Path+"/privacy/delete-request", authenticate, s.RequestDeletion)

	// role administration
	app.Post(handler.APIPrefix+"/admin/users/:id/roles",
		authenticate,
		guard.RequirePermissions(resolver, coreauth.PermRolesAssign),
		s.AssignRole,
	)
	app.Delete(handler.APIPrefix+"/admin/users/:id/roles/:role",
		authenticate,
		guard.RequirePermissions(resolver, coreauth.PermRolesAssign),
		s.RemoveRole,
	)
}

// Register handles account creation.
func (s *Service) Register(c *fiber.Ctx) error {
	in := new(RegisterRequest)

	if err := c.BodyParser(in); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	result, err := s.auth.Register(in.Email, in.Password, in.FirstName, in.LastName, in.Phone)
	if errors.Is(err, coreauth.ErrEmailExists) {
		return handler.Conflict(c, "Email already registered")
	}

	if err != nil {
		log.Error().Err(err).Msg("registration failed")
		return handler.Internal(c)
	}

	s.openSession(c, result, models.AuditActionRegister)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Registration successful",
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// Login handles credential validation and token issuance.
func (s *Service) Login(c *fiber.Ctx) error {
	in := new(LoginRequest)

	if err := c.BodyParser(in); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	result, err := s.auth.Login(in.Email, in.Password, in.TOTPCode)

	switch {
	case errors.Is(err, coreauth.ErrInvalidCredentials):
		return handler.Unauthenticated(c, "Invalid email or password")
	case errors.Is(err, coreauth.ErrAccountInactive):
		return handler.Unauthenticated(c, "Account is inactive")
	case errors.Is(err, coreauth.ErrTwoFactorRequired):
		return handler.Unauthenticated(c, "Two-factor code required")
	case errors.Is(err, coreauth.ErrInvalidTwoFactorCode):
		return handler.Unauthenticated(c, "Invalid two-factor code")
	case err != nil:
		log.Error().Err(err).Msg("login failed")
		return handler.Internal(c)
	}

	s.openSession(c, result, models.AuditActionLogin)

	return c.JSON(fiber.Map{
		"message":      "Login successful",
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// openSession creates the server-side session record, mirrors the token
// into the HttpOnly cookie and records the audit entry.
func (s *Service) openSession(c *fiber.Ctx, result *coreauth.Result, action models.AuditAction) {
	ip := handler.ClientIP(c)
	userAgent := c.Get(fiber.HeaderUserAgent)

	sess, err := s.sessions.Create(result.User.ID, result.AccessToken, ip, userAgent)
	if err != nil {
		// the token is still valid; the session record is defense in depth
		log.Error().Err(err).Uint64("user_id", result.User.ID).Msg("failed to create session")
	}

	cookie := &fiber.Cookie{
		Name:     s.cfg.Auth.CookieName,
		Value:    result.AccessToken,
		MaxAge:   int(s.cfg.Auth.TokenTTL.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	}
	c.Cookie(cookie)

	userID := result.User.ID
	entry := audit.Entry{
		UserID:     &userID,
		Action:     action,
		EntityType: "users",
		EntityID:   strconv.FormatUint(userID, 10),
		IPAddress:  ip,
		UserAgent:  userAgent,
	}

	if sess != nil {
		entry.NewValues = models.ValueMap{"session_id": sess.ID, "device": sess.Device}
	}

	s.recorder.Log(entry)
	auditmw.MarkRecorded(c)
}

// Logout revokes the current session and clears the cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	if sessionID := authn.SessionIDFromCtx(c); sessionID != "" {
		if err := s.sessions.Revoke(sessionID); err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("failed to revoke session")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.cfg.Auth.CookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	if principal != nil {
		userID := principal.ID
		s.recorder.Log(audit.Entry{
			UserID:     &userID,
			Action:     models.AuditActionLogout,
			EntityType: "users",
			EntityID:   strconv.FormatUint(userID, 10),
			IPAddress:  handler.ClientIP(c),
			UserAgent:  c.Get(fiber.HeaderUserAgent),
		})
		auditmw.MarkRecorded(c)
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Profile returns the authenticated principal's public fields and roles.
func (s *Service) Profile(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user": authn.PrincipalFromCtx(c),
	})
}

// Roles returns the principal's id and current role names from the
// database, not the token: this endpoint reflects assignments made since
// login even though guards keep using the token's asserted roles.
func (s *Service) Roles(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	roles, err := s.auth.GetUserRoles(principal.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", principal.ID).Msg("failed to get roles")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{
		"user_id": principal.ID,
		"roles":   roles,
	})
}

// Permissions returns the principal's resolved permission union.
func (s *Service) Permissions(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	permissions, err := s.resolver.UserPermissions(principal.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", principal.ID).Msg("failed to resolve permissions")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{
		"user_id":     principal.ID,
		"permissions": permissions,
	})
}

// EnrollTOTP starts two-factor enrollment for the current user.
func (s *Service) EnrollTOTP(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	url, err := s.auth.EnrollTOTP(principal.ID)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", principal.ID).Msg("totp enrollment failed")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"otpauth_url": url})
}

// ActivateTOTP confirms enrollment with a valid code and enables the
// second factor.
func (s *Service) ActivateTOTP(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	in := new(ActivateTOTPRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	err := s.auth.ActivateTOTP(principal.ID, in.Code)

	switch {
	case errors.Is(err, coreauth.ErrTwoFactorNotEnrolled):
		return handler.BadRequest(c, "Two-factor enrollment not started")
	case errors.Is(err, coreauth.ErrInvalidTwoFactorCode):
		return handler.BadRequest(c, "Invalid two-factor code")
	case err != nil:
		log.Error().Err(err).Uint64("user_id", principal.ID).Msg("totp activation failed")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"message": "Two-factor authentication enabled"})
}

// DisableTOTP removes the second factor from the current account.
func (s *Service) DisableTOTP(c *fiber.Ctx) error {
	principal := authn.PrincipalFromCtx(c)

	if err := s.auth.DisableTOTP(principal.ID); err != nil {
		log.Error().Err(err).Uint64("user_id", principal.ID).Msg("totp disable failed")
		return handler.Internal(c)
	}

	return c.JSON(fiber.Map{"message": "Two-factor authentication disabled"})
}

// AssignRole grants a role to a user.
func (s *Service) AssignRole(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.BadRequest(c, "Invalid user id")
	}

	in := new(AssignRoleRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	principal := authn.PrincipalFromCtx(c)
	actorID := principal.ID

	err = s.auth.AssignRole(userID, in.Role, &actorID)

	switch {
	case errors.Is(err, coreauth.ErrRoleNotFound):
		return handler.NotFound(c, "Role not found")
	case errors.Is(err, coreauth.ErrRoleAlreadyAssigned):
		return handler.Conflict(c, "User already has this role")
	case err != nil:
		log.Error().Err(err).Uint64("user_id", userID).Str("role", in.Role).Msg("role assignment failed")
		return handler.Internal(c)
	}

	s.recorder.Log(audit.Entry{
		UserID:     &actorID,
		Action:     models.AuditActionRoleAssign,
		EntityType: "user_roles",
		EntityID:   strconv.FormatUint(userID, 10),
		NewValues:  models.ValueMap{"role": in.Role},
		IPAddress:  handler.ClientIP(c),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
	})
	auditmw.MarkRecorded(c)

	return c.JSON(fiber.Map{"message": "Role assigned"})
}

// RemoveRole revokes a role from a user.
func (s *Service) RemoveRole(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return handler.BadRequest(c, "Invalid user id")
	}

	roleName := c.Params("role")

	err = s.auth.RemoveRole(userID, roleName)

	switch {
	case errors.Is(err, coreauth.ErrRoleNotFound):
		return handler.NotFound(c, "Role not found")
	case err != nil:
		log.Error().Err(err).Uint64("user_id", userID).Str("role", roleName).Msg("role removal failed")
		return handler.Internal(c)
	}

	principal := authn.PrincipalFromCtx(c)
	actorID := principal.ID

	s.recorder.Log(audit.Entry{
		UserID:     &actorID,
		Action:     models.AuditActionRoleRemove,
		EntityType: "user_roles",
		EntityID:   strconv.FormatUint(userID, 10),
		OldValues:  models.ValueMap{"role": roleName},
		IPAddress:  handler.ClientIP(c),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
	})
	auditmw.MarkRecorded(c)

	return c.JSON(fiber.Map{"message": "Role removed"})
}
