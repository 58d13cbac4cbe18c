package auth

import (
	"fmt"
	"strings"
)

// MinSecretLength is the minimum JWT signing secret length in bytes.
const MinSecretLength = 32

var weakSecrets = []string{
	"secret",
	"changeme",
	"password",
	"jwt_secret",
	"jwtsecret",
	"your-256-bit-secret",
	"your_jwt_secret",
	"supersecret",
	"default",
	"test",
}

var keyboardPatterns = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

// ValidateSecret rejects signing secrets that are short, built from a
// well-known placeholder, a keyboard run or a single repeated character.
// The error never includes the secret.
func ValidateSecret(secret string) error {
	if len(secret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters (current length: %d)", MinSecretLength, len(secret))
	}
	if isRepeatedChar(secret) {
		return fmt.Errorf("JWT_SECRET must not be a single repeated character")
	}

	lower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		rest := strings.TrimPrefix(lower, weak)
		if (rest != lower && len(rest) < MinSecretLength/2) || strings.ReplaceAll(lower, weak, "") == "" {
			return fmt.Errorf("JWT_SECRET must not be based on a placeholder value")
		}
	}
	for _, p := range keyboardPatterns {
		if strings.Contains(lower, p) {
			return fmt.Errorf("JWT_SECRET must not contain a keyboard pattern")
		}
	}
	return nil
}

func isRepeatedChar(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
