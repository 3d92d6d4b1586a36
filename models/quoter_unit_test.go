package models

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/ztofreight/quotes_backend/utils"
)

func TestNewQuoterValidateRejectsBadEmail(t *testing.T) {
	input := NewQuoter{Name: "范云飞", Phone: "13800138000", Email: "not-an-email"}
	err := input.validate(context.Background(), 0)
	if err == nil {
		t.Fatal("bad email accepted")
	}
	var fieldErr *utils.ValidationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("error = %T, want *utils.ValidationError", err)
	}
	if fieldErr.Field != "email" {
		t.Errorf("field = %q, want email", fieldErr.Field)
	}
}

func TestNewQuoterValidateRejectsBadPhone(t *testing.T) {
	input := NewQuoter{Name: "范云飞", Phone: "123"}
	err := input.validate(context.Background(), 0)
	var fieldErr *utils.ValidationError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("error = %T (%v), want *utils.ValidationError", err, err)
	}
	if fieldErr.Field != "phone" {
		t.Errorf("field = %q, want phone", fieldErr.Field)
	}
}
