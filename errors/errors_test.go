package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeDisposed, "gone")
	if err.Code != ErrCodeDisposed {
		t.Errorf("expected code %s, got %s", ErrCodeDisposed, err.Code)
	}
	if err.Message != "gone" {
		t.Errorf("expected message 'gone', got %q", err.Message)
	}
}

func TestAppError_Disposed_Success(t *testing.T) {
	err := Disposed("shared sequence")
	if err.Code != ErrCodeDisposed {
		t.Errorf("expected DISPOSED, got %s", err.Code)
	}
	if err.Details["resource"] != "shared sequence" {
		t.Errorf("expected resource detail, got %v", err.Details["resource"])
	}
	if !strings.Contains(err.Error(), "shared sequence has been disposed") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestAppError_CapacityExceeded_Success(t *testing.T) {
	err := CapacityExceeded(2)
	if err.Code != ErrCodeCapacityExceeded {
		t.Errorf("expected CAPACITY_EXCEEDED, got %s", err.Code)
	}
	if err.Details["limit"] != 2 {
		t.Errorf("expected limit=2, got %v", err.Details["limit"])
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("readers", "must be at least 1")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "readers" {
		t.Errorf("expected field=readers, got %v", err.Details["field"])
	}

	noField := InvalidInput("", "bad")
	if _, ok := noField.Details["field"]; ok {
		t.Error("expected no 'field' key when field is empty")
	}
}

func TestAppError_Internal_Success(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal(cause)
	if err.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Disposed("cursor").WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := Disposed("cursor").WithDetails(map[string]any{"extra": "info"})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["resource"] != "cursor" {
		t.Error("expected original details to be preserved")
	}

	err.WithDetails(map[string]any{"another": "detail"})
	if err.Details["another"] != "detail" || err.Details["extra"] != "info" {
		t.Errorf("expected merged details, got %v", err.Details)
	}
}

func TestAppError_WithDetails_Nil(t *testing.T) {
	err := Internal(nil).WithDetails(nil)
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized even with nil input")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
	err.WithDetail("key", "other")
	if err.Details["key"] != "other" {
		t.Errorf("expected overwrite, got %v", err.Details["key"])
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"disposed sentinel", Disposed("sequence"), ErrDisposed, true},
		{"capacity sentinel", CapacityExceeded(3), ErrCapacityExceeded, true},
		{"invalid sentinel", InvalidInput("x", "y"), ErrInvalidInput, true},
		{"wrapped disposed", fmt.Errorf("enumerate: %w", Disposed("sequence")), ErrDisposed, true},
		{"code mismatch", Disposed("sequence"), ErrCapacityExceeded, false},
		{"plain error", fmt.Errorf("disposed"), ErrDisposed, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stderrors.Is(tc.err, tc.target); got != tc.want {
				t.Errorf("errors.Is = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	if !IsDisposed(fmt.Errorf("wrap: %w", Disposed("cursor"))) {
		t.Error("expected IsDisposed on wrapped error")
	}
	if !IsCapacityExceeded(CapacityExceeded(1)) {
		t.Error("expected IsCapacityExceeded")
	}
	if HasCode(nil, ErrCodeDisposed) {
		t.Error("nil error should not carry a code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("plain error should not carry a code")
	}
}

func TestIsKnownCode(t *testing.T) {
	for _, code := range []ErrorCode{ErrCodeDisposed, ErrCodeCapacityExceeded, ErrCodeInvalidInput, ErrCodeInternal} {
		if !IsKnownCode(code) {
			t.Errorf("expected %s to be known", code)
		}
	}
	if IsKnownCode("NOT_A_CODE") {
		t.Error("expected unknown code to be rejected")
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", CapacityExceeded(1))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed")
	}
	if appErr.Code != ErrCodeCapacityExceeded {
		t.Errorf("expected CAPACITY_EXCEEDED, got %s", appErr.Code)
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to fail on plain error")
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError on wrapped error")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var err error = Disposed("sequence")
	if err.Error() == "" {
		t.Error("expected non-empty error string")
	}
}
