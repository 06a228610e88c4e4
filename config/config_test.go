package config

import (
	"os"
	"strings"
	"testing"
)

func TestValidateEnvMissingCritical(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	err := ValidateEnv()
	if err == nil {
		t.Fatal("expected error when critical vars are missing")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("expected both missing vars named, got %v", err)
	}
}

func TestValidateEnvOK(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "user:pass@tcp(localhost:3306)/vastra")

	if err := ValidateEnv(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("SOME_MISSING_KEY")
	if got := GetEnv("SOME_MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}

	t.Setenv("SOME_SET_KEY", "value")
	if got := GetEnv("SOME_SET_KEY", "fallback"); got != "value" {
		t.Errorf("expected value, got %q", got)
	}
}
