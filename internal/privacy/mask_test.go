package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		expected string
	}{
		{
			name:     "standard address",
			email:    "user@example.com",
			expected: "use***@example.com",
		},
		{
			name:     "short local part kept",
			email:    "ab@example.com",
			expected: "ab@example.com",
		},
		{
			name:     "three char local part kept",
			email:    "abc@example.com",
			expected: "abc@example.com",
		},
		{
			name:     "not an email",
			email:    "no-at-sign",
			expected: "no-at-sign",
		},
		{
			name:     "empty",
			email:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MaskEmail(tc.email))
		})
	}
}

func TestMaskEmailIdempotentSafe(t *testing.T) {
	once := MaskEmail("user@example.com")
	twice := MaskEmail(once)

	// "use***" keeps its first three visible characters on a second pass.
	assert.Equal(t, "use***@example.com", twice)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******3210", MaskPhone("9876543210"))
	assert.Equal(t, "123", MaskPhone("123"))
	assert.Equal(t, "", MaskPhone(""))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "abc***xyz", Mask("abcdefxyz", 3))
	assert.Equal(t, "abcdef", Mask("abcdef", 3))
	assert.Equal(t, "", Mask("", 3))
}
