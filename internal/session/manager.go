// Package session owns the lifecycle of login sessions and flags
// anomalous account activity.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// Suspicious activity thresholds, each an independent heuristic OR-ed into
// the final signal.
const (
	maxActiveSessions  = 10
	maxDistinctPlaces  = 3
	maxSessionsPerHour = 5
)

// Manager tracks issued sessions against the store of record.
type Manager struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewManager creates a session manager. A non-positive ttl falls back to
// the 7 day default.
func NewManager(db *gorm.DB, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Manager{db: db, ttl: ttl}
}

// HashToken computes the one-way hash under which a raw token is stored.
// The raw token itself is never persisted.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Create inserts a new active session for a successful login.
func (m *Manager) Create(userID uint64, rawToken, ip, userAgent string) (*models.Session, error) {
	now := time.Now()

	sess := models.Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		TokenHash:      HashToken(rawToken),
		IPAddress:      ip,
		UserAgent:      userAgent,
		Device:         ParseDevice(userAgent),
		IsActive:       true,
		ExpiresAt:      now.Add(m.ttl),
		LastActivityAt: &now,
	}

	if err := m.db.Create(&sess).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &sess, nil
}

// FindByToken looks up the active session a raw token maps to. Used as
// defense in depth beyond the token's own signature check: a revoked
// session rejects an otherwise valid token.
func (m *Manager) FindByToken(rawToken string) (*models.Session, error) {
	var sess models.Session

	err := m.db.Where("token_hash = ? AND is_active = ?", HashToken(rawToken), true).
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return &sess, nil
}

// UpdateActivity refreshes the liveness signal on a session. Unknown ids
// are silent no-ops.
func (m *Manager) UpdateActivity(sessionID string) error {
	return m.db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("last_activity_at", time.Now()).Error
}

// ActiveSessions returns the user's active sessions, newest first.
func (m *Manager) ActiveSessions(userID uint64) ([]models.Session, error) {
	var sessions []models.Session

	err := m.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

// SessionCount returns the number of active sessions for a user.
func (m *Manager) SessionCount(userID uint64) (int64, error) {
	var count int64

	err := m.db.Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}

// Revoke deactivates one session. Unknown ids are silent no-ops so a
// caller can not probe for session existence.
func (m *Manager) Revoke(sessionID string) error {
	return m.db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("is_active", false).Error
}

// RevokeOwned deactivates one session only if it belongs to the given
// user. Like Revoke, non-matches are silent no-ops.
func (m *Manager) RevokeOwned(userID uint64, sessionID string) error {
	return m.db.Model(&models.Session{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Update("is_active", false).Error
}

// RevokeAll deactivates every active session of a user, e.g. on password
// change or account lock.
func (m *Manager) RevokeAll(userID uint64) error {
	return m.db.Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
}

// RevokeOthers deactivates every active session of the user except the
// one to keep ("log out all other devices").
func (m *Manager) RevokeOthers(userID uint64, keepSessionID string) error {
	return m.db.Model(&models.Session{}).
		Where("user_id = ? AND id != ? AND is_active = ?", userID, keepSessionID, true).
		Update("is_active", false).Error
}

// CleanupExpired hard-deletes sessions past their expiry and returns the
// count removed. Idempotent and safe to run concurrently with live logins.
func (m *Manager) CleanupExpired() (int64, error) {
	result := m.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// DetectSuspiciousActivity evaluates three independent heuristics over the
// user's active sessions and reports whether any fired. The signal is
// advisory: it never gates access by itself.
func (m *Manager) DetectSuspiciousActivity(userID uint64) (bool, error) {
	sessions, err := m.ActiveSessions(userID)
	if err != nil {
		return false, err
	}

	// more than 10 concurrently active sessions
	if len(sessions) > maxActiveSessions {
		return true, nil
	}

	// more than 3 distinct non-empty location labels
	locations := make(map[string]struct{})

	for _, sess := range sessions {
		if sess.Location != "" {
			locations[sess.Location] = struct{}{}
		}
	}

	if len(locations) > maxDistinctPlaces {
		return true, nil
	}

	// more than 5 sessions created within the trailing hour
	oneHourAgo := time.Now().Add(-time.Hour)
	recent := 0

	for _, sess := range sessions {
		if sess.CreatedAt.After(oneHourAgo) {
			recent++
		}
	}

	return recent > maxSessionsPerHour, nil
}
