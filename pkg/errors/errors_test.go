package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidAlgorithm, "unknown algorithm: %s", "spiral"),
			want: "INVALID_ALGORITHM: unknown algorithm: spiral",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeStore, stderrors.New("connection refused"), "save topology %s", "lab"),
			want: "STORE_ERROR: save topology lab: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeTopologyNotFound, "no such topology")
	if !Is(err, ErrCodeTopologyNotFound) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() should not match a different code")
	}

	// Wrapped in a plain error, the code should still be found.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeTopologyNotFound) {
		t.Error("Is() should unwrap plain error chains")
	}

	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() should be false for non-structured errors")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "something broke")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidFormat, "bad format")); got != ErrCodeInvalidFormat {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidFormat)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad input")); got != "bad input" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad input")
	}
	if got := UserMessage(stderrors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() on plain error = %q", got)
	}
}
