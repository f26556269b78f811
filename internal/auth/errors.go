package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive is returned when authenticating a deactivated account.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when registering with an address already in use.
	ErrEmailExists = errors.New("user with this email already exists")

	// ErrRoleNotFound is returned when a named role does not exist.
	ErrRoleNotFound = errors.New("role not found")

	// ErrRoleAlreadyAssigned is returned when assigning a role the user already holds.
	ErrRoleAlreadyAssigned = errors.New("user already has this role")

	// ErrUnauthenticated is returned when a bearer token fails verification
	// or resolves to a missing or inactive principal.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrTwoFactorRequired is returned at login when the account has a second
	// factor enabled and no code was supplied.
	ErrTwoFactorRequired = errors.New("two-factor code required")

	// ErrInvalidTwoFactorCode is returned when the supplied TOTP code does not match.
	ErrInvalidTwoFactorCode = errors.New("invalid two-factor code")

	// ErrTwoFactorNotEnrolled is returned when activating a second factor
	// before enrollment generated a secret.
	ErrTwoFactorNotEnrolled = errors.New("two-factor enrollment not started")
)
