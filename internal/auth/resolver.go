package auth

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
)

// Resolver computes the effective permission set for roles and users.
//
// A role's effective permissions are its own true-valued flags plus every
// flag inherited along the parent chain. The walk keeps a visited set of
// role ids: a cycle in the role graph stops further inheritance instead of
// recursing forever.
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a new permission resolver.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// ResolvePermissions returns the full permission set of one role,
// own flags plus inherited ones.
func (r *Resolver) ResolvePermissions(role *models.Role) (map[string]struct{}, error) {
	permissions := make(map[string]struct{})
	visited := make(map[uint64]struct{})

	if err := r.collect(role, permissions, visited); err != nil {
		return nil, err
	}

	return permissions, nil
}

// collect adds the role's own true-valued flags and recurses into the
// parent chain. Roles already in visited are skipped.
func (r *Resolver) collect(role *models.Role, permissions map[string]struct{}, visited map[uint64]struct{}) error {
	if role == nil {
		return nil
	}

	if _, seen := visited[role.ID]; seen {
		// cycle in the role graph: stop inheriting here
		return nil
	}

	visited[role.ID] = struct{}{}

	for name, granted := range role.Permissions {
		if granted {
			permissions[name] = struct{}{}
		}
	}

	if role.ParentID == nil {
		return nil
	}

	var parent models.Role

	err := r.db.First(&parent, *role.ParentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// dangling parent reference: treat as end of chain
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to load parent role %d: %w", *role.ParentID, err)
	}

	return r.collect(&parent, permissions, visited)
}

// UnionForUser returns the union of resolved permission sets across all of
// the user's assigned roles.
func (r *Resolver) UnionForUser(userID uint64) (map[string]struct{}, error) {
	var roles []models.Role

	err := r.db.Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user roles: %w", err)
	}

	permissions := make(map[string]struct{})
	visited := make(map[uint64]struct{})

	for i := range roles {
		if err := r.collect(&roles[i], permissions, visited); err != nil {
			return nil, err
		}
	}

	return permissions, nil
}

// MissingPermissions returns the required permissions the user does not
// hold. An empty result means the user passes the AND check. A user with
// no roles at all misses every required permission.
func (r *Resolver) MissingPermissions(userID uint64, required []string) ([]string, error) {
	granted, err := r.UnionForUser(userID)
	if err != nil {
		return nil, err
	}

	var missing []string

	for _, perm := range required {
		if _, ok := granted[perm]; !ok {
			missing = append(missing, perm)
		}
	}

	return missing, nil
}

// UserPermissions returns the user's resolved permission names, sorted.
func (r *Resolver) UserPermissions(userID uint64) ([]string, error) {
	granted, err := r.UnionForUser(userID)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(granted))
	for perm := range granted {
		out = append(out, perm)
	}

	sort.Strings(out)

	return out, nil
}
