package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSigner(t *testing.T) {
	testCases := []struct {
		name          string
		secret        string
		ttl           time.Duration
		expectedError error
	}{
		{
			name:          "empty secret",
			secret:        "",
			ttl:           time.Hour,
			expectedError: ErrEmptySecret,
		},
		{
			name:          "zero ttl",
			secret:        "unit-test-secret",
			ttl:           0,
			expectedError: ErrInvalidTTL,
		},
		{
			name:   "valid",
			secret: "unit-test-secret",
			ttl:    time.Hour,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			signer, err := NewSigner(tc.secret, tc.ttl)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, signer)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, signer)
		})
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	signer, err := NewSigner("unit-test-secret", time.Hour)
	require.NoError(t, err)

	signed, err := signer.Issue(42, "user@example.com", []string{"viewer", "coach", "viewer", ""})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := signer.Verify(signed)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, []string{"viewer", "coach"}, claims.Roles, "roles must be deduplicated, empty dropped")
}

func TestVerifyFailures(t *testing.T) {
	signer, err := NewSigner("unit-test-secret", time.Hour)
	require.NoError(t, err)

	otherSigner, err := NewSigner("another-secret", time.Hour)
	require.NoError(t, err)

	expiredSigner, err := NewSigner("unit-test-secret", time.Nanosecond)
	require.NoError(t, err)

	validToken, err := signer.Issue(1, "a@example.com", []string{"viewer"})
	require.NoError(t, err)

	wrongSecretToken, err := otherSigner.Issue(1, "a@example.com", []string{"viewer"})
	require.NoError(t, err)

	expiredToken, err := expiredSigner.Issue(1, "a@example.com", []string{"viewer"})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not.a.token"},
		{name: "wrong secret", token: wrongSecretToken},
		{name: "expired", token: expiredToken},
		{name: "tampered payload", token: validToken[:len(validToken)-4] + "AAAA"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := signer.Verify(tc.token)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}

	t.Run("valid token still verifies", func(t *testing.T) {
		claims, err := signer.Verify(validToken)
		require.NoError(t, err)
		assert.NotNil(t, claims)
	})
}
