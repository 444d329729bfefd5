package utils

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerateAPIKey(t *testing.T) {
	key := GenerateAPIKey("")

	pattern := regexp.MustCompile(`^napi_[0-9a-f]{64}$`)
	if !pattern.MatchString(key) {
		t.Errorf("generated key %q does not match expected format", key)
	}

	second := GenerateAPIKey("")
	if key == second {
		t.Error("two consecutive keys must not collide")
	}
}

func TestGenerateAPIKeyCustomPrefix(t *testing.T) {
	key := GenerateAPIKey("test_")

	if !strings.HasPrefix(key, "test_") {
		t.Errorf("expected prefix test_, got %q", key)
	}
	if len(key) != len("test_")+64 {
		t.Errorf("expected 64 hex characters after prefix, got %d", len(key)-len("test_"))
	}
}

func TestGenerateAPIKeyEnvPrefix(t *testing.T) {
	t.Setenv("API_KEY_PREFIX", "env_")

	key := GenerateAPIKey("")
	if !strings.HasPrefix(key, "env_") {
		t.Errorf("expected env-configured prefix, got %q", key)
	}
}

func TestIsValidAPIKeyFormat(t *testing.T) {
	valid := GenerateAPIKey("")

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"generated key", valid, true},
		{"empty", "", false},
		{"wrong prefix", "other_" + strings.Repeat("a", 64), false},
		{"too short", "napi_" + strings.Repeat("a", 63), false},
		{"too long", "napi_" + strings.Repeat("a", 65), false},
		{"non-hex", "napi_" + strings.Repeat("z", 64), false},
		{"mixed case hex", "napi_" + strings.Repeat("A", 32) + strings.Repeat("f", 32), true},
		{"prefix only", "napi_", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidAPIKeyFormat(tt.key); got != tt.want {
				t.Errorf("IsValidAPIKeyFormat(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
