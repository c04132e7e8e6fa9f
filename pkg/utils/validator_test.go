package utils

import (
	"errors"
	"testing"
)

type sampleRequest struct {
	Name string `validate:"required,min=3"`
	Kind string `validate:"omitempty,oneof=pickup delivery"`
	Lat  *float64
}

func TestValidateStructPasses(t *testing.T) {
	if err := ValidateStruct(&sampleRequest{Name: "abc", Kind: "pickup"}); err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}
}

func TestValidateStructCollectsViolations(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Name: "", Kind: "teleport"})

	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs.Violations) != 2 {
		t.Fatalf("violations = %d, want 2", len(verrs.Violations))
	}

	byField := map[string]FieldViolation{}
	for _, v := range verrs.Violations {
		byField[v.Field] = v
	}
	if v, ok := byField["name"]; !ok || v.Rule != "required" {
		t.Errorf("name violation = %+v", v)
	}
	if v, ok := byField["kind"]; !ok || v.Rule != "oneof" {
		t.Errorf("kind violation = %+v", v)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	err := &ValidationErrors{Violations: []FieldViolation{
		{Field: "name", Rule: "required", Message: "name is required"},
		{Field: "kind", Rule: "oneof", Message: "kind must be one of: pickup delivery"},
	}}
	want := "name is required; kind must be one of: pickup delivery"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
