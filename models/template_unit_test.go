package models

import (
	"errors"
	"testing"

	"bitbucket.org/ztofreight/quotes_backend/utils"
)

func TestNewTemplateValidateReportsFieldErrors(t *testing.T) {
	cases := []struct {
		name      string
		input     NewTemplate
		wantField string
	}{
		{
			name:      "unknown template type",
			input:     NewTemplate{Name: "通票标准", TemplateType: "NOPE", TemplateData: "{}"},
			wantField: "template_type",
		},
		{
			name:      "malformed template data",
			input:     NewTemplate{Name: "通票标准", TemplateType: "TONGPIAO", TemplateData: "{not json"},
			wantField: "template_data",
		},
	}
	for _, tc := range cases {
		err := tc.input.validate()
		if err == nil {
			t.Errorf("%s: validate accepted", tc.name)
			continue
		}
		var fieldErr *utils.ValidationError
		if !errors.As(err, &fieldErr) {
			t.Errorf("%s: error = %T, want *utils.ValidationError", tc.name, err)
		} else if fieldErr.Field != tc.wantField {
			t.Errorf("%s: field = %q, want %q", tc.name, fieldErr.Field, tc.wantField)
		}
	}

	good := NewTemplate{Name: "通票标准", TemplateType: "TONGPIAO", TemplateData: `{"regions":[]}`}
	if err := good.validate(); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
}
