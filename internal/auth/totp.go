package auth

import (
	"errors"
	"fmt"

	"github.com/pquerna/otp/totp"
	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
)

const totpIssuer = "GoShooterPortal"

// EnrollTOTP generates a new TOTP secret for the user and returns the
// otpauth:// provisioning URL. The second factor stays disabled until
// ActivateTOTP confirms the user can produce a valid code.
func (s *Service) EnrollTOTP(userID uint64) (string, error) {
	var user models.User

	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUserNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to query user: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate totp secret: %w", err)
	}

	err = s.db.Model(&user).Updates(map[string]interface{}{
		"totp_secret":  key.Secret(),
		"totp_enabled": false,
	}).Error
	if err != nil {
		return "", fmt.Errorf("failed to store totp secret: %w", err)
	}

	return key.URL(), nil
}

// ActivateTOTP verifies a code against the enrolled secret and enables the
// second factor for future logins.
func (s *Service) ActivateTOTP(userID uint64, code string) error {
	var user models.User

	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to query user: %w", err)
	}

	if user.TOTPSecret == "" {
		return ErrTwoFactorNotEnrolled
	}

	if !validateTOTP(code, user.TOTPSecret) {
		return ErrInvalidTwoFactorCode
	}

	return s.db.Model(&user).Update("totp_enabled", true).Error
}

// DisableTOTP removes the second factor from an account.
func (s *Service) DisableTOTP(userID uint64) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"totp_secret":  "",
			"totp_enabled": false,
		}).Error
}

func validateTOTP(code, secret string) bool {
	return totp.Validate(code, secret)
}
