package auth

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	TOTPCode string `json:"totp_code" validate:"omitempty,len=6"`
}

// AssignRoleRequest is the payload for role assignment.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,max=50"`
}

// ActivateTOTPRequest carries the confirmation code for 2FA activation.
type ActivateTOTPRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}
