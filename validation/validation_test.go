package validation

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kbukum/seqshare/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New().Required("name", "  ")
	if !v.HasErrors() {
		t.Fatal("expected error for blank value")
	}
	if v.Errors()[0].Field != "name" {
		t.Errorf("expected field 'name', got %q", v.Errors()[0].Field)
	}
	if New().Required("name", "x").HasErrors() {
		t.Error("expected no error for non-empty value")
	}
}

func TestValidatorUUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"valid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"invalid", "not-a-uuid", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := New().UUID("id", tc.value).HasErrors(); got != tc.wantErr {
				t.Errorf("HasErrors() = %v, want %v", got, tc.wantErr)
			}
		})
	}
}

func TestValidatorMinMax(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Validator
		wantErr bool
	}{
		{"min ok", func() *Validator { return New().Min("readers", 1, 1) }, false},
		{"min fail", func() *Validator { return New().Min("readers", 0, 1) }, true},
		{"max ok", func() *Validator { return New().Max("consumers", 8, 8) }, false},
		{"max fail", func() *Validator { return New().Max("consumers", 9, 8) }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.build().HasErrors(); got != tc.wantErr {
				t.Errorf("HasErrors() = %v, want %v", got, tc.wantErr)
			}
		})
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"share", "publish", "memoize"}
	if New().OneOf("policy", "publish", allowed).HasErrors() {
		t.Error("expected publish to be allowed")
	}
	v := New().OneOf("policy", "broadcast", allowed)
	if !v.HasErrors() {
		t.Fatal("expected error for unknown policy")
	}
	if !strings.Contains(v.Errors()[0].Message, "share, publish, memoize") {
		t.Errorf("expected allowed values in message, got %q", v.Errors()[0].Message)
	}
}

func TestValidatorCustom(t *testing.T) {
	if New().Custom(true, "x", "bad").HasErrors() {
		t.Error("expected no error when condition holds")
	}
	if !New().Custom(false, "x", "bad").HasErrors() {
		t.Error("expected error when condition fails")
	}
}

func TestValidatorValidate(t *testing.T) {
	if err := New().Min("readers", 3, 1).Validate(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	single := New().Min("readers", 0, 1).Validate()
	if single == nil {
		t.Fatal("expected error")
	}
	if single.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", single.Code)
	}
	if single.Details["field"] != "readers" {
		t.Errorf("expected field detail, got %v", single.Details)
	}

	multi := New().Required("name", "").Min("readers", 0, 1).Validate()
	if multi == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(multi.Message, "name: is required") || !strings.Contains(multi.Message, "readers: must be at least 1") {
		t.Errorf("unexpected message %q", multi.Message)
	}
	if fields, ok := multi.Details["fields"].([]FieldError); !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %v", multi.Details["fields"])
	}
}

type sharingConfig struct {
	Policy    string `mapstructure:"policy" validate:"required,oneof=share publish memoize"`
	Readers   int    `mapstructure:"readers" validate:"gte=0"`
	Consumers int    `mapstructure:"consumers" validate:"min=1,max=64"`
}

type wrapper struct {
	Sharing sharingConfig `mapstructure:"sharing"`
}

func TestStructValidateValid(t *testing.T) {
	cfg := wrapper{Sharing: sharingConfig{Policy: "memoize", Readers: 2, Consumers: 3}}
	if err := Validate(cfg); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	cfg := wrapper{Sharing: sharingConfig{Policy: "broadcast", Readers: -1, Consumers: 0}}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	for _, want := range []string{"sharing.policy", "sharing.readers", "sharing.consumers"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("MaxReaders"); got != "max_readers" {
		t.Errorf("expected max_readers, got %q", got)
	}
}
