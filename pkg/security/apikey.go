package security

import (
	"crypto/subtle"
	"regexp"
	"strings"
)

var (
	validKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	unsafeKeyChars  = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	hexPattern      = regexp.MustCompile(`^[a-fA-F0-9]+$`)
)

// APIKeyValidator provides validation and masking of API keys
type APIKeyValidator struct {
	minLength int
	maxLength int
}

func NewAPIKeyValidator() *APIKeyValidator {
	return &APIKeyValidator{
		minLength: 8,
		maxLength: 512,
	}
}

// ValidateAPIKey validates API key format and length
func (v *APIKeyValidator) ValidateAPIKey(apiKey string) bool {
	if len(apiKey) < v.minLength || len(apiKey) > v.maxLength {
		return false
	}
	return validKeyPattern.MatchString(apiKey)
}

// SanitizeAPIKey trims whitespace and strips characters unsafe for URLs and headers
func (v *APIKeyValidator) SanitizeAPIKey(apiKey string) string {
	return unsafeKeyChars.ReplaceAllString(strings.TrimSpace(apiKey), "")
}

// MaskAPIKey creates a masked version for logging
func (v *APIKeyValidator) MaskAPIKey(apiKey string) string {
	if len(apiKey) == 0 {
		return "[empty]"
	}
	if len(apiKey) <= 8 {
		return "[***]"
	}
	return apiKey[:3] + "..." + apiKey[len(apiKey)-3:]
}

func (v *APIKeyValidator) SecureCompare(key1, key2 string) bool {
	return subtle.ConstantTimeCompare([]byte(key1), []byte(key2)) == 1
}

// IsValidTMDBKey accepts the 32-char hexadecimal v3 key format.
func (v *APIKeyValidator) IsValidTMDBKey(apiKey string) bool {
	if !v.ValidateAPIKey(apiKey) {
		return false
	}
	return len(apiKey) == 32 && hexPattern.MatchString(apiKey)
}
