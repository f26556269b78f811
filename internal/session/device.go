package session

import "strings"

// UnknownDevice is the fallback label when the user agent matches no
// known platform.
const UnknownDevice = "Unknown Device"

// devicePatterns is checked in order; iPhone/iPad before Mac and Android
// before Linux, since those user agents contain both substrings.
var devicePatterns = []struct {
	substring string
	label     string
}{
	{"iPhone", "iPhone"},
	{"iPad", "iPad"},
	{"Android", "Android"},
	{"Windows", "Windows PC"},
	{"Mac", "Mac"},
	{"Linux", "Linux"},
}

// ParseDevice classifies a user agent into a coarse device label.
func ParseDevice(userAgent string) string {
	for _, p := range devicePatterns {
		if strings.Contains(userAgent, p.substring) {
			return p.label
		}
	}

	return UnknownDevice
}
