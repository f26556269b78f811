package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// AuditAction is the kind of action an audit record describes.
type AuditAction string

const (
	// AuditActionCreate records a resource creation.
	AuditActionCreate AuditAction = "CREATE"
	// AuditActionRead records a resource read.
	AuditActionRead AuditAction = "READ"
	// AuditActionUpdate records a resource update.
	AuditActionUpdate AuditAction = "UPDATE"
	// AuditActionDelete records a resource deletion.
	AuditActionDelete AuditAction = "DELETE"
	// AuditActionLogin records a successful login.
	AuditActionLogin AuditAction = "LOGIN"
	// AuditActionLogout records a logout.
	AuditActionLogout AuditAction = "LOGOUT"
	// AuditActionRegister records an account registration.
	AuditActionRegister AuditAction = "REGISTER"
	// AuditActionRoleAssign records a role assignment.
	AuditActionRoleAssign AuditAction = "ROLE_ASSIGN"
	// AuditActionRoleRemove records a role removal.
	AuditActionRoleRemove AuditAction = "ROLE_REMOVE"
)

// ValueMap is a structured key-value snapshot stored as a JSON column.
type ValueMap map[string]interface{}

// Value implements driver.Valuer for JSON storage.
func (m ValueMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	return string(out), nil
}

// Scan implements sql.Scanner for JSON storage.
func (m *ValueMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for ValueMap")
	}
}

// AuditLog is an append-only record of who did what to which resource.
// Rows are created exactly once and never updated or deleted by the core.
type AuditLog struct {
	// ID is the unique identifier for the log entry.
	ID uint64 `gorm:"primaryKey"`
	// UserID is the acting user, nil for system or unauthenticated actions.
	UserID *uint64 `gorm:"index:idx_audit_user_created"`
	// Action is the recorded action kind.
	Action AuditAction `gorm:"index:idx_audit_action_created;size:50;not null"`
	// EntityType is the target table or entity name.
	EntityType string `gorm:"index:idx_audit_entity;size:100"`
	// EntityID is the target record identifier, if known.
	EntityID string `gorm:"index:idx_audit_entity;size:100"`
	// OldValues is the snapshot before a mutation.
	OldValues ValueMap `gorm:"type:text"`
	// NewValues is the snapshot after a mutation.
	NewValues ValueMap `gorm:"type:text"`
	// IPAddress is the client address, preferring forwarded-for headers.
	IPAddress string `gorm:"size:45"`
	// UserAgent is the client user agent.
	UserAgent string `gorm:"type:text"`
	// RequestID correlates the entry with a request, if available.
	RequestID string `gorm:"size:36"`
	// Description is a short free-form summary, e.g. "POST /api/v1/news".
	Description string `gorm:"type:text"`
	// CreatedAt is the timestamp when the entry was written (managed by GORM).
	CreatedAt time.Time `gorm:"index:idx_audit_user_created;index:idx_audit_action_created"`
}

// TableName specifies the database table name for the AuditLog model.
func (AuditLog) TableName() string {
	return "audit_logs"
}
