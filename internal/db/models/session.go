package models

import "time"

// Session is the server-side record of one issued login, independent of the
// bearer token's own signature and expiry. The raw token is never stored;
// only a one-way hash is kept for lookup.
type Session struct {
	// ID is the session identifier (UUID).
	ID string `gorm:"primaryKey;size:36"`
	// UserID is the owning user.
	UserID uint64 `gorm:"index:idx_sessions_user_active;not null"`
	// TokenHash is the SHA-256 hex digest of the issued token.
	TokenHash string `gorm:"index;size:64;not null"`
	// IPAddress is the client address at login.
	IPAddress string `gorm:"size:45"`
	// UserAgent is the client user agent at login.
	UserAgent string `gorm:"type:text"`
	// Device is a coarse device label derived from the user agent.
	Device string `gorm:"size:100"`
	// Location is a best-effort location label.
	Location string `gorm:"size:100"`
	// IsActive is flipped to false on revocation.
	IsActive bool `gorm:"index:idx_sessions_user_active;default:true"`
	// ExpiresAt is the hard session expiry.
	ExpiresAt time.Time `gorm:"not null"`
	// LastActivityAt is updated on authenticated traffic.
	LastActivityAt *time.Time
	// CreatedAt is the timestamp when the session was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the session was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Session model.
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its hard expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Valid reports whether the session is active and not expired.
func (s *Session) Valid() bool {
	return s.IsActive && !s.Expired()
}
