package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type validationFixture struct {
	Email    string  `validate:"required,email"`
	Password string  `validate:"required,min=8"`
	Discount float64 `validate:"gt=0,lt=100"`
}

func TestSanitizeValidationError(t *testing.T) {
	v := validator.New()

	err := v.Struct(validationFixture{Discount: 150})
	msg := SanitizeValidationError(err)

	if !strings.Contains(msg, "email is required") {
		t.Errorf("expected required message, got %q", msg)
	}
	if !strings.Contains(msg, "discount must be less than 100") {
		t.Errorf("expected lt message, got %q", msg)
	}
	// Internal struct names never leak
	if strings.Contains(msg, "validationFixture") || strings.Contains(msg, "Struct") {
		t.Errorf("message leaks internals: %q", msg)
	}
}

func TestSanitizeValidationErrorEmailFormat(t *testing.T) {
	v := validator.New()

	err := v.Struct(validationFixture{Email: "not-an-email", Password: "longenough", Discount: 10})
	msg := SanitizeValidationError(err)
	if !strings.Contains(msg, "email must be a valid email address") {
		t.Errorf("expected email format message, got %q", msg)
	}
}

func TestSanitizeValidationErrorNonValidator(t *testing.T) {
	if got := SanitizeValidationError(errors.New("json: cannot unmarshal string into Go value")); got != "Invalid request body" {
		t.Errorf("expected generic message, got %q", got)
	}
	if got := SanitizeValidationError(errors.New("some other failure")); got != "Invalid request body" {
		t.Errorf("expected generic message, got %q", got)
	}
	if got := SanitizeValidationError(nil); got != "" {
		t.Errorf("expected empty for nil, got %q", got)
	}
}
