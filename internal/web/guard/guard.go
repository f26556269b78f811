// Package guard implements the request-time role and permission checks.
//
// Routes declare their requirements by composing these middlewares after
// the authenticate middleware. Public routes simply register neither the
// authenticate middleware nor a guard, which is the explicit "public"
// marker in this codebase.
package guard

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoShooterPortal/GoShooterPortal/internal/auth"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/handler"
	"github.com/GoShooterPortal/GoShooterPortal/internal/web/middleware/authn"
)

// RequireRoles passes if the principal holds at least one of the given
// role names (OR semantics). The rejection message names the missing
// roles for operator debugging.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(roles) == 0 {
			return c.Next()
		}

		principal := authn.PrincipalFromCtx(c)
		if principal == nil {
			return handler.Forbidden(c, "User is not authenticated")
		}

		if len(principal.Roles) == 0 {
			return handler.Forbidden(c, "User does not have any roles assigned")
		}

		for _, role := range roles {
			if principal.HasRole(role) {
				return c.Next()
			}
		}

		log.Warn().Uint64("user_id", principal.ID).Strs("required_roles", roles).
			Msg("user lacks required role")

		return handler.Forbidden(c, "User does not have required role(s): "+strings.Join(roles, ", "))
	}
}

// RequirePermissions passes only if the principal's resolved permission
// union covers every given permission (AND semantics). A principal with
// no roles at all is rejected before permission evaluation.
func RequirePermissions(resolver *auth.Resolver, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(permissions) == 0 {
			return c.Next()
		}

		principal := authn.PrincipalFromCtx(c)
		if principal == nil {
			return handler.Forbidden(c, "User is not authenticated")
		}

		if len(principal.Roles) == 0 {
			return handler.Forbidden(c, "User has no roles assigned")
		}

		missing, err := resolver.MissingPermissions(principal.ID, permissions)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", principal.ID).Strs("permissions", permissions).
				Msg("failed to resolve permissions")

			return handler.Internal(c)
		}

		if len(missing) > 0 {
			log.Warn().Uint64("user_id", principal.ID).Strs("missing", missing).
				Msg("user lacks required permissions")

			return handler.Forbidden(c, "Missing required permission(s): "+strings.Join(missing, ", "))
		}

		return c.Next()
	}
}
