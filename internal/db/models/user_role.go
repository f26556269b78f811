package models

import "time"

// UserRole represents the many-to-many relationship between users and roles.
// Rows are only ever inserted at provisioning or promotion time and deleted
// on demotion; they are never updated.
type UserRole struct {
	// UserID is the ID of the user in this assignment.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// RoleID is the ID of the role in this assignment.
	RoleID uint64 `gorm:"primaryKey;column:role_id"`
	// AssignedBy is the ID of the user who performed the assignment, if known.
	AssignedBy *uint64
	// User is the associated user (loaded via foreign key).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the role was assigned (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the UserRole model.
func (UserRole) TableName() string {
	return "user_roles"
}
