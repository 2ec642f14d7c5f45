package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownNode, "edge references %s", "n9")

	if err.Code != ErrCodeUnknownNode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownNode)
	}

	if err.Message != "edge references n9" {
		t.Errorf("Message = %v, want %v", err.Message, "edge references n9")
	}

	expected := "UNKNOWN_NODE: edge references n9"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeIO, cause, "write output")

	if err.Code != ErrCodeIO {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestSentinelMatching(t *testing.T) {
	sentinel := New(ErrCodeUnbalancedCluster, "no open cluster")
	err := fmt.Errorf("generate fcm_flow: %w", New(ErrCodeUnbalancedCluster, "EndCluster at depth 0"))

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should match *Error values by code")
	}
	if errors.Is(err, New(ErrCodeUnknownNode, "")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeRenderFailed, "test"),
			code:     ErrCodeRenderFailed,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeRenderFailed, "test"),
			code:     ErrCodeIO,
			expected: false,
		},
		{
			name:     "outer code",
			err:      Wrap(ErrCodeRenderFailed, New(ErrCodeRenderTimeout, "inner"), "outer"),
			code:     ErrCodeRenderFailed,
			expected: true,
		},
		{
			name:     "inner code",
			err:      Wrap(ErrCodeRenderFailed, New(ErrCodeRenderTimeout, "inner"), "outer"),
			code:     ErrCodeRenderTimeout,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidConfig, "test"), ErrCodeInvalidConfig},
		{"wrapped by fmt", fmt.Errorf("ctx: %w", New(ErrCodeIO, "x")), ErrCodeIO},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDetail(t *testing.T) {
	inner := New(ErrCodeRenderFailed, "dot exited 1").WithDetail("Error: syntax error in line 3")
	outer := Wrap(ErrCodeRenderFailed, inner, "render entity_relationship")

	if got := Detail(outer); got != "Error: syntax error in line 3" {
		t.Errorf("Detail() = %q", got)
	}
	if got := Detail(errors.New("plain")); got != "" {
		t.Errorf("Detail(plain) = %q, want empty", got)
	}
	if got := Detail(nil); got != "" {
		t.Errorf("Detail(nil) = %q, want empty", got)
	}
}
