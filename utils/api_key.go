package utils

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"regexp"
	"strings"
)

const (
	DefaultAPIKeyPrefix = "napi_"
	apiKeyRandomBytes   = 32
)

var apiKeyHexPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// APIKeyPrefix returns the configured key prefix.
func APIKeyPrefix() string {
	return GetEnvAsString("API_KEY_PREFIX", DefaultAPIKeyPrefix)
}

// GenerateAPIKey returns a fresh credential: prefix + 64 hex characters
// from 32 random bytes. The key is the sole authentication factor, so a
// failing random source is fatal.
func GenerateAPIKey(prefix string) string {
	if prefix == "" {
		prefix = APIKeyPrefix()
	}

	buf := make([]byte, apiKeyRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate API key: %v", err)
	}

	return prefix + hex.EncodeToString(buf)
}

// IsValidAPIKeyFormat reports whether key looks like one of ours.
// Format alone never authenticates; the key is always resolved against
// the users collection.
func IsValidAPIKeyFormat(key string) bool {
	prefix := APIKeyPrefix()
	if key == "" || !strings.HasPrefix(key, prefix) {
		return false
	}
	return apiKeyHexPattern.MatchString(key[len(prefix):])
}
