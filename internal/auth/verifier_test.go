package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoShooterPortal/GoShooterPortal/internal/token"
)

func TestVerify(t *testing.T) {
	db := setupTestDB(t)

	signer, err := token.NewSigner("unit-test-secret", time.Hour)
	require.NoError(t, err)

	otherSigner, err := token.NewSigner("a-different-secret", time.Hour)
	require.NoError(t, err)

	verifier := NewVerifier(db, signer)

	active := seedUserWithRoles(t, db, "active@example.com")
	inactive := seedUserWithRoles(t, db, "locked@example.com")
	require.NoError(t, db.Model(&inactive).Update("active", false).Error)

	validToken, err := signer.Issue(active.ID, active.Email, []string{"viewer"})
	require.NoError(t, err)

	inactiveToken, err := signer.Issue(inactive.ID, inactive.Email, []string{"viewer"})
	require.NoError(t, err)

	ghostToken, err := signer.Issue(9999, "ghost@example.com", nil)
	require.NoError(t, err)

	foreignToken, err := otherSigner.Issue(active.ID, active.Email, []string{"viewer"})
	require.NoError(t, err)

	testCases := []struct {
		name        string
		tokenString string
		wantErr     bool
	}{
		{name: "valid token and active user", tokenString: validToken},
		{name: "inactive user", tokenString: inactiveToken, wantErr: true},
		{name: "user no longer exists", tokenString: ghostToken, wantErr: true},
		{name: "wrong signing secret", tokenString: foreignToken, wantErr: true},
		{name: "garbage token", tokenString: "not.a.jwt", wantErr: true},
		{name: "empty token", tokenString: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			principal, err := verifier.Verify(tc.tokenString)

			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnauthenticated)
				assert.Nil(t, principal)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, active.ID, principal.ID)
			assert.Equal(t, active.Email, principal.Email)
			assert.Equal(t, []string{"viewer"}, principal.Roles)
		})
	}
}

func TestPrincipalHasRole(t *testing.T) {
	principal := &Principal{Roles: []string{"viewer", "coach"}}

	assert.True(t, principal.HasRole("viewer"))
	assert.True(t, principal.HasRole("coach"))
	assert.False(t, principal.HasRole("admin"))

	empty := &Principal{}
	assert.False(t, empty.HasRole("viewer"))
}
