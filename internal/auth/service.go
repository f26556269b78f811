package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
	"github.com/GoShooterPortal/GoShooterPortal/internal/token"
)

// DefaultRole is assigned to every newly registered account.
const DefaultRole = "viewer"

// Result is returned from register and login: the signed bearer token plus
// the public principal fields with the roles asserted in the token.
type Result struct {
	AccessToken string    `json:"access_token"`
	User        Principal `json:"user"`
}

// Service provides registration, login and role assignment.
type Service struct {
	db     *gorm.DB
	signer *token.Signer
}

// NewService creates a new auth service.
func NewService(db *gorm.DB, signer *token.Signer) *Service {
	return &Service{db: db, signer: signer}
}

// Register creates a new account, assigns the default role and issues a token.
func (s *Service) Register(email, password, firstName, lastName, phone string) (*Result, error) {
	var existing models.User

	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.User{
		PublicID:     uuid.NewString(),
		Email:        email,
		PasswordHash: models.HashPassword(password),
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Active:       true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Assign the default role. A missing default role is a seeding problem,
	// not a registration failure.
	var viewer models.Role
	if err := s.db.Where("name = ?", DefaultRole).First(&viewer).Error; err == nil {
		if err := s.db.Create(&models.UserRole{UserID: user.ID, RoleID: viewer.ID}).Error; err != nil {
			return nil, fmt.Errorf("failed to assign default role: %w", err)
		}
	} else {
		log.Warn().Str("role", DefaultRole).Msg("default role missing, registering user without roles")
	}

	roles, err := s.GetUserRoles(user.ID)
	if err != nil {
		return nil, err
	}

	return s.issue(&user, roles)
}

// Login validates credentials and issues a token with the user's current
// role names embedded. Accounts with a second factor enabled must supply
// a valid TOTP code.
func (s *Service) Login(email, password, totpCode string) (*Result, error) {
	var user models.User

	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		return nil, ErrAccountInactive
	}

	if user.TOTPEnabled {
		if totpCode == "" {
			return nil, ErrTwoFactorRequired
		}

		if !validateTOTP(totpCode, user.TOTPSecret) {
			return nil, ErrInvalidTwoFactorCode
		}
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to update last login")
	}

	roles, err := s.GetUserRoles(user.ID)
	if err != nil {
		return nil, err
	}

	return s.issue(&user, roles)
}

// GetUserRoles returns the role names currently assigned to a user.
func (s *Service) GetUserRoles(userID uint64) ([]string, error) {
	var roles []string

	err := s.db.Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	return roles, nil
}

// AssignRole adds a role to a user. Assigning a role the user already
// holds is a conflict.
func (s *Service) AssignRole(userID uint64, roleName string, assignedBy *uint64) error {
	var role models.Role

	err := s.db.Where("name = ?", roleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRoleNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to query role: %w", err)
	}

	var existing models.UserRole

	err = s.db.Where("user_id = ? AND role_id = ?", userID, role.ID).First(&existing).Error
	if err == nil {
		return ErrRoleAlreadyAssigned
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing assignment: %w", err)
	}

	assignment := models.UserRole{
		UserID:     userID,
		RoleID:     role.ID,
		AssignedBy: assignedBy,
	}

	if err := s.db.Create(&assignment).Error; err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	return nil
}

// RemoveRole deletes a role assignment from a user.
func (s *Service) RemoveRole(userID uint64, roleName string) error {
	var role models.Role

	err := s.db.Where("name = ?", roleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRoleNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to query role: %w", err)
	}

	return s.db.Where("user_id = ? AND role_id = ?", userID, role.ID).
		Delete(&models.UserRole{}).Error
}

func (s *Service) issue(user *models.User, roles []string) (*Result, error) {
	signed, err := s.signer.Issue(user.ID, user.Email, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Result{
		AccessToken: signed,
		User: Principal{
			ID:        user.ID,
			PublicID:  user.PublicID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Roles:     roles,
		},
	}, nil
}
