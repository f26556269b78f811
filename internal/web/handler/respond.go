// Package handler holds shared helpers for the web handlers.
package handler

import "github.com/gofiber/fiber/v2"

// ErrorBody is the structured error payload returned to clients.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorBody under an "error" key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Unauthenticated writes a 401 response. Missing, invalid or expired
// credentials all look the same to the client.
func Unauthenticated(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Authentication required"
	}

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: ErrorBody{Code: "unauthenticated", Message: message},
	})
}

// Forbidden writes a 403 response naming the unmet requirement.
func Forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
		Error: ErrorBody{Code: "forbidden", Message: message},
	})
}

// NotFound writes a 404 response.
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Not found"
	}

	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error: ErrorBody{Code: "not_found", Message: message},
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: ErrorBody{Code: "bad_request", Message: message},
	})
}

// Conflict writes a 409 response.
func Conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
		Error: ErrorBody{Code: "conflict", Message: message},
	})
}

// Internal writes a 500 response without leaking details.
func Internal(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: ErrorBody{Code: "internal", Message: "Internal server error"},
	})
}

// ClientIP prefers the forwarded-for header over the socket address.
func ClientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}

	if real := c.Get("X-Real-Ip"); real != "" {
		return real
	}

	return c.IP()
}
