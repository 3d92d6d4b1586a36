package utils

import (
	"errors"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"fan.yunfei@zto.com", "sales+quotes@example.cn", "a@b.co"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	invalid := []string{"", "not-an-email", "missing@tld", "@no-local.com", "spaces in@example.com"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	if err := ValidatePhoneNumber("13800138000", "CN"); err != nil {
		t.Errorf("valid mobile rejected: %v", err)
	}

	for _, phone := range []string{"123", "not a phone"} {
		err := ValidatePhoneNumber(phone, "CN")
		if err == nil {
			t.Errorf("ValidatePhoneNumber(%q) accepted", phone)
			continue
		}
		var fieldErr *ValidationError
		if !errors.As(err, &fieldErr) {
			t.Errorf("ValidatePhoneNumber(%q) error = %T, want *ValidationError", phone, err)
		} else if fieldErr.Field != "phone" {
			t.Errorf("ValidatePhoneNumber(%q) field = %q, want phone", phone, fieldErr.Field)
		}
	}
}
