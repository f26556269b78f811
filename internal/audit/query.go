package audit

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
)

// DefaultQueryLimit caps list queries when the caller passes no limit.
const DefaultQueryLimit = 100

// Statistics summarizes audit activity over a trailing window.
type Statistics struct {
	Total       int64            `json:"total"`
	PeriodDays  int              `json:"period_days"`
	Actions     map[string]int64 `json:"actions"`
	UniqueUsers int64            `json:"unique_users"`
}

// UserTrail is the complete audit summary for one user.
type UserTrail struct {
	UserID        uint64             `json:"user_id"`
	TotalActions  int64              `json:"total_actions"`
	ActionsByType map[string]int64   `json:"actions_by_type"`
	FirstActivity *time.Time         `json:"first_activity"`
	LastActivity  *time.Time         `json:"last_activity"`
	Recent        []models.AuditLog  `json:"recent"`
}

// Query serves read access to the audit trail. All list queries return
// newest first.
type Query struct {
	db *gorm.DB
}

// NewQuery creates the audit query surface.
func NewQuery(db *gorm.DB) *Query {
	return &Query{db: db}
}

// ByUser returns a user's entries, newest first.
func (q *Query) ByUser(userID uint64, limit int) ([]models.AuditLog, error) {
	return q.list(q.db.Where("user_id = ?", userID), limit)
}

// ByEntity returns entries for a table or entity name, optionally narrowed
// to one record.
func (q *Query) ByEntity(entityType, entityID string, limit int) ([]models.AuditLog, error) {
	tx := q.db.Where("entity_type = ?", entityType)
	if entityID != "" {
		tx = tx.Where("entity_id = ?", entityID)
	}

	return q.list(tx, limit)
}

// ByAction returns entries of one action kind, newest first.
func (q *Query) ByAction(action models.AuditAction, limit int) ([]models.AuditLog, error) {
	return q.list(q.db.Where("action = ?", action), limit)
}

// Recent returns the most recent entries.
func (q *Query) Recent(limit int) ([]models.AuditLog, error) {
	return q.list(q.db, limit)
}

func (q *Query) list(tx *gorm.DB, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	var logs []models.AuditLog

	err := tx.Model(&models.AuditLog{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}

	return logs, nil
}

// GetStatistics computes counts by action and the distinct-user count over
// the trailing window in days.
func (q *Query) GetStatistics(days int) (*Statistics, error) {
	if days <= 0 {
		days = 30
	}

	since := time.Now().AddDate(0, 0, -days)

	var logs []models.AuditLog

	err := q.db.Where("created_at >= ?", since).Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query audit statistics: %w", err)
	}

	stats := &Statistics{
		Total:      int64(len(logs)),
		PeriodDays: days,
		Actions:    make(map[string]int64),
	}

	users := make(map[uint64]struct{})

	for i := range logs {
		stats.Actions[string(logs[i].Action)]++

		if logs[i].UserID != nil {
			users[*logs[i].UserID] = struct{}{}
		}
	}

	stats.UniqueUsers = int64(len(users))

	return stats, nil
}

// UserTrail builds the complete per-user audit summary.
func (q *Query) UserTrail(userID uint64, recentLimit int) (*UserTrail, error) {
	var logs []models.AuditLog

	err := q.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query user trail: %w", err)
	}

	trail := &UserTrail{
		UserID:        userID,
		TotalActions:  int64(len(logs)),
		ActionsByType: make(map[string]int64),
	}

	for i := range logs {
		trail.ActionsByType[string(logs[i].Action)]++
	}

	if len(logs) > 0 {
		// newest first: first element is the last activity
		trail.LastActivity = &logs[0].CreatedAt
		trail.FirstActivity = &logs[len(logs)-1].CreatedAt
	}

	if recentLimit <= 0 {
		recentLimit = DefaultQueryLimit
	}

	if len(logs) > recentLimit {
		logs = logs[:recentLimit]
	}

	trail.Recent = logs

	return trail, nil
}
