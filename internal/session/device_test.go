package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDevice(t *testing.T) {
	testCases := []struct {
		name      string
		userAgent string
		expected  string
	}{
		{
			name:      "iphone",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)",
			expected:  "iPhone",
		},
		{
			name:      "ipad before mac",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)",
			expected:  "iPad",
		},
		{
			name:      "android before linux",
			userAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8)",
			expected:  "Android",
		},
		{
			name:      "windows",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
			expected:  "Windows PC",
		},
		{
			name:      "mac",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0)",
			expected:  "Mac",
		},
		{
			name:      "linux",
			userAgent: "Mozilla/5.0 (X11; Linux x86_64)",
			expected:  "Linux",
		},
		{
			name:      "unknown",
			userAgent: "curl/8.4.0",
			expected:  UnknownDevice,
		},
		{
			name:      "empty",
			userAgent: "",
			expected:  UnknownDevice,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseDevice(tc.userAgent))
		})
	}
}
