package auth

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
	"github.com/GoShooterPortal/GoShooterPortal/internal/token"
)

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()

	signer, err := token.NewSigner("unit-test-secret", time.Hour)
	require.NoError(t, err)

	return NewService(db, signer)
}

func seedDefaultRole(t *testing.T, db *gorm.DB) models.Role {
	t.Helper()

	role := models.Role{
		Name:        DefaultRole,
		Level:       3,
		Permissions: models.PermissionMap{"news:read": true},
	}
	require.NoError(t, db.Create(&role).Error)

	return role
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultRole(t, db)
	svc := newTestService(t, db)

	result, err := svc.Register("new@example.com", "secret-password", "Jane", "Doe", "")
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.User.PublicID)
	assert.Equal(t, "new@example.com", result.User.Email)
	assert.Equal(t, []string{DefaultRole}, result.User.Roles)

	var stored models.User
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&stored).Error)
	assert.True(t, stored.Active)
	assert.True(t, stored.VerifyPassword("secret-password"))
	assert.NotEqual(t, "secret-password", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultRole(t, db)
	svc := newTestService(t, db)

	_, err := svc.Register("dup@example.com", "secret-password", "Jane", "Doe", "")
	require.NoError(t, err)

	_, err = svc.Register("dup@example.com", "other-password", "John", "Doe", "")
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterWithoutDefaultRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	// no roles seeded: registration still succeeds, just without roles
	result, err := svc.Register("norole@example.com", "secret-password", "Jane", "Doe", "")
	require.NoError(t, err)
	assert.Empty(t, result.User.Roles)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	seedDefaultRole(t, db)
	svc := newTestService(t, db)

	_, err := svc.Register("login@example.com", "secret-password", "Jane", "Doe", "")
	require.NoError(t, err)

	inactive := seedUserWithRoles(t, db, "inactive@example.com")
	require.NoError(t, db.Model(&inactive).Update("active", false).Error)

	testCases := []struct {
		name          string
		email         string
		password      string
		expectedError error
	}{
		{
			name:     "valid credentials",
			email:    "login@example.com",
			password: "secret-password",
		},
		{
			name:          "wrong password",
			email:         "login@example.com",
			password:      "not-the-password",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "unknown email",
			email:         "ghost@example.com",
			password:      "secret-password",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:          "inactive account",
			email:         "inactive@example.com",
			password:      "secret-password",
			expectedError: ErrAccountInactive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Login(tc.email, tc.password, "")

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
			assert.Equal(t, tc.email, result.User.Email)
		})
	}
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Register("lastlogin@example.com", "secret-password", "Jane", "Doe", "")
	require.NoError(t, err)

	_, err = svc.Login("lastlogin@example.com", "secret-password", "")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", "lastlogin@example.com").First(&user).Error)
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *user.LastLoginAt, time.Minute)
}

func TestLoginWithTwoFactor(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Register("2fa@example.com", "secret-password", "Jane", "Doe", "")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", "2fa@example.com").First(&user).Error)

	_, err = svc.EnrollTOTP(user.ID)
	require.NoError(t, err)

	require.NoError(t, db.First(&user, user.ID).Error)
	require.NotEmpty(t, user.TOTPSecret)

	code, err := totp.GenerateCode(user.TOTPSecret, time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.ActivateTOTP(user.ID, code))

	// missing code
	_, err = svc.Login("2fa@example.com", "secret-password", "")
	require.ErrorIs(t, err, ErrTwoFactorRequired)

	// wrong code
	_, err = svc.Login("2fa@example.com", "secret-password", "000000")
	require.ErrorIs(t, err, ErrInvalidTwoFactorCode)

	// valid code
	code, err = totp.GenerateCode(user.TOTPSecret, time.Now())
	require.NoError(t, err)

	result, err := svc.Login("2fa@example.com", "secret-password", code)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)

	// disabling the factor makes the plain login work again
	require.NoError(t, svc.DisableTOTP(user.ID))

	_, err = svc.Login("2fa@example.com", "secret-password", "")
	require.NoError(t, err)
}

func TestActivateTOTPWithoutEnrollment(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	user := seedUserWithRoles(t, db, "notenrolled@example.com")

	err := svc.ActivateTOTP(user.ID, "123456")
	require.ErrorIs(t, err, ErrTwoFactorNotEnrolled)
}

func TestAssignRole(t *testing.T) {
	db := setupTestDB(t)
	viewer, coach, _ := seedRoleChain(t, db)
	svc := newTestService(t, db)

	user := seedUserWithRoles(t, db, "assign@example.com", viewer.ID)
	admin := seedUserWithRoles(t, db, "actor@example.com")

	require.NoError(t, svc.AssignRole(user.ID, coach.Name, &admin.ID))

	roles, err := svc.GetUserRoles(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"viewer", "coach"}, roles)

	var assignment models.UserRole
	require.NoError(t, db.Where("user_id = ? AND role_id = ?", user.ID, coach.ID).First(&assignment).Error)
	require.NotNil(t, assignment.AssignedBy)
	assert.Equal(t, admin.ID, *assignment.AssignedBy)

	// duplicate assignment is a conflict
	err = svc.AssignRole(user.ID, coach.Name, &admin.ID)
	require.ErrorIs(t, err, ErrRoleAlreadyAssigned)

	// unknown role
	err = svc.AssignRole(user.ID, "nonexistent", &admin.ID)
	require.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRemoveRole(t *testing.T) {
	db := setupTestDB(t)
	viewer, coach, _ := seedRoleChain(t, db)
	svc := newTestService(t, db)

	user := seedUserWithRoles(t, db, "remove@example.com", viewer.ID, coach.ID)

	require.NoError(t, svc.RemoveRole(user.ID, coach.Name))

	roles, err := svc.GetUserRoles(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer"}, roles)

	// removing a role the user does not hold is a silent no-op
	require.NoError(t, svc.RemoveRole(user.ID, coach.Name))

	require.ErrorIs(t, svc.RemoveRole(user.ID, "nonexistent"), ErrRoleNotFound)
}
