package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// PermissionMap maps permission names to an enabled flag. Only keys whose
// value is true grant the permission. Stored as a JSON column.
type PermissionMap map[string]bool

// Value implements driver.Valuer for JSON storage.
func (m PermissionMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	return string(out), nil
}

// Scan implements sql.Scanner for JSON storage.
func (m *PermissionMap) Scan(value interface{}) error {
	if value == nil {
		*m = PermissionMap{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for PermissionMap")
	}
}

// Role represents a named, inheritable bundle of permission flags.
// Roles form a tree: a role may inherit from exactly one parent, and a
// role's effective permissions are its own true-valued flags plus every
// flag inherited along the parent chain.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint64 `gorm:"primaryKey"`
	// Name is the unique name of the role (e.g., "admin", "viewer").
	Name string `gorm:"uniqueIndex;size:50;not null"`
	// DisplayName is the human-readable role name.
	DisplayName string `gorm:"size:100"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255"`
	// Permissions holds the role's own permission flags.
	Permissions PermissionMap `gorm:"type:text"`
	// IsSystem indicates if this is a system role that cannot be deleted.
	IsSystem bool `gorm:"default:false"`
	// ParentID is the optional parent role this role inherits from.
	ParentID *uint64
	// Level is the privilege rank, 0 = highest (admin).
	Level int `gorm:"default:0"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
