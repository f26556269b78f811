package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User represents a member account in the portal.
// Accounts authenticate with email and password; roles are attached via
// the user_roles join table and are never stored on the user row itself.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// PublicID is the externally visible identifier (UUID).
	PublicID string `gorm:"uniqueIndex;size:36;not null"`
	// Email is the unique login address.
	Email string `gorm:"uniqueIndex;size:255;not null"`
	// PasswordHash is the Argon2id hashed password.
	PasswordHash string `gorm:"size:255;not null"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:100"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:100"`
	// Phone is the user's phone number.
	Phone string `gorm:"size:20"`
	// Active indicates whether the account may authenticate.
	Active bool `gorm:"default:true"`
	// EmailVerifiedAt is set once the address was confirmed.
	EmailVerifiedAt *time.Time
	// LastLoginAt is updated on every successful login.
	LastLoginAt *time.Time
	// TOTPSecret is the TOTP secret for two-factor authentication.
	TOTPSecret string `gorm:"size:255"`
	// TOTPEnabled indicates whether a second factor is required at login.
	TOTPEnabled bool `gorm:"default:false"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
	// DeletedAt is the soft delete timestamp (nil if not deleted, managed by GORM).
	DeletedAt *time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// Returns true if the password matches, false otherwise.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.PasswordHash)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
