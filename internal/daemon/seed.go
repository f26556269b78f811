package daemon

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/auth"
	"github.com/GoShooterPortal/GoShooterPortal/internal/config"
	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
)

// seed creates the system role hierarchy and, on an empty database, a
// bootstrap admin account. Both steps are skipped when rows already exist,
// so seeding is safe to run on every start.
func seed(cfg *config.Config, db *gorm.DB) {
	seedRoles(db)
	seedAdmin(cfg, db)
}

// seedRoles inserts the four system roles as a single inheritance chain:
// admin -> manager -> coach -> viewer. Each role carries only its own
// additions; the rest is inherited through the parent link.
func seedRoles(db *gorm.DB) {
	var count int64
	db.Model(&models.Role{}).Count(&count)

	if count > 0 {
		return
	}

	viewer := models.Role{
		Name:        "viewer",
		DisplayName: "Viewer",
		Description: "Read-only access to public club data",
		IsSystem:    true,
		Level:       3,
		Permissions: models.PermissionMap{
			auth.PermShootersRead:     true,
			auth.PermCompetitionsRead: true,
			auth.PermScoresRead:       true,
			auth.PermNewsRead:         true,
			auth.PermEventsRead:       true,
		},
	}
	db.Create(&viewer)

	coach := models.Role{
		Name:        "coach",
		DisplayName: "Coach",
		Description: "Score entry and shooter classification",
		IsSystem:    true,
		Level:       2,
		ParentID:    &viewer.ID,
		Permissions: models.PermissionMap{
			auth.PermScoresCreate:     true,
			auth.PermScoresUpdate:     true,
			auth.PermShootersClassify: true,
		},
	}
	db.Create(&coach)

	manager := models.Role{
		Name:        "manager",
		DisplayName: "Manager",
		Description: "Club content and competition management",
		IsSystem:    true,
		Level:       1,
		ParentID:    &coach.ID,
		Permissions: models.PermissionMap{
			auth.PermShootersCreate:     true,
			auth.PermShootersUpdate:     true,
			auth.PermCompetitionsCreate: true,
			auth.PermCompetitionsUpdate: true,
			auth.PermNewsCreate:         true,
			auth.PermNewsUpdate:         true,
			auth.PermEventsCreate:       true,
			auth.PermEventsUpdate:       true,
			auth.PermAuditRead:          true,
		},
	}
	db.Create(&manager)

	admin := models.Role{
		Name:        "admin",
		DisplayName: "Administrator",
		Description: "Full administrative access",
		IsSystem:    true,
		Level:       0,
		ParentID:    &manager.ID,
		Permissions: models.PermissionMap{
			auth.PermUsersRead:          true,
			auth.PermUsersCreate:        true,
			auth.PermUsersUpdate:        true,
			auth.PermUsersDelete:        true,
			auth.PermRolesRead:          true,
			auth.PermRolesCreate:        true,
			auth.PermRolesUpdate:        true,
			auth.PermRolesDelete:        true,
			auth.PermRolesAssign:        true,
			auth.PermShootersDelete:     true,
			auth.PermCompetitionsDelete: true,
			auth.PermNewsDelete:         true,
			auth.PermEventsDelete:       true,
			auth.PermSystemAdmin:        true,
		},
	}
	db.Create(&admin)

	log.Info().Msg("seeded system roles")
}

// seedAdmin creates a bootstrap administrator on an otherwise empty user
// table. The password must be changed after first login.
func seedAdmin(cfg *config.Config, db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)

	if count > 0 {
		return
	}

	if !cfg.DevMode {
		log.Warn().Msg("seeding bootstrap admin with default password; change it after first login")
	}

	admin := models.User{
		PublicID:     uuid.NewString(),
		Email:        "admin@localhost",
		PasswordHash: models.HashPassword("changeme"),
		FirstName:    "Portal",
		LastName:     "Administrator",
		Active:       true,
	}
	db.Create(&admin)

	var adminRole models.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		log.Error().Err(err).Msg("admin role missing, bootstrap user has no role")
		return
	}

	db.Create(&models.UserRole{UserID: admin.ID, RoleID: adminRole.ID})
}
