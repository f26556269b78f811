package auth

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoShooterPortal/GoShooterPortal/internal/db/models"
	"github.com/GoShooterPortal/GoShooterPortal/internal/token"
)

// Principal is the minimal authenticated context attached to a request.
// Roles come from the token payload, not the database: a role change takes
// effect at the user's next login.
type Principal struct {
	ID        uint64   `json:"id"`
	PublicID  string   `json:"public_id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}

// HasRole reports whether the principal holds the named role.
func (p *Principal) HasRole(name string) bool {
	for _, role := range p.Roles {
		if role == name {
			return true
		}
	}

	return false
}

// Verifier authenticates bearer tokens and loads the acting principal.
// It is a pure read: no side effects on success or failure.
type Verifier struct {
	db     *gorm.DB
	signer *token.Signer
}

// NewVerifier creates a new credential verifier.
func NewVerifier(db *gorm.DB, signer *token.Signer) *Verifier {
	return &Verifier{db: db, signer: signer}
}

// Verify checks the token's signature and expiry, loads the user by the
// subject claim and rejects missing or inactive accounts. All failure
// modes surface as ErrUnauthenticated; the caller must re-authenticate.
func (v *Verifier) Verify(tokenString string) (*Principal, error) {
	claims, err := v.signer.Verify(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrUnauthenticated
	}

	var user models.User

	err = v.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}

	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrUnauthenticated
	}

	return &Principal{
		ID:        user.ID,
		PublicID:  user.PublicID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     claims.Roles,
	}, nil
}
