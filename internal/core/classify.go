package core

import "strings"

// Classify decides between ClassUnavailable and ClassInvalid for a free-text platform message.
// The message is unavailable when it contains any of the taken substrings (case-sensitive).
func Classify(message string, taken []string) Class {
	for _, substr := range taken {
		if strings.Contains(message, substr) {
			return ClassUnavailable
		}
	}
	return ClassInvalid
}
