package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"testing"

	"github.com/matzehuels/stratum/pkg/layers"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeFileNotFound, cause, "failed to open")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotFound)
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

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeCycle,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeCycle, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeCycle,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("solve: %w", New(ErrCodeStaticConflict, "inner")),
			code:     ErrCodeStaticConflict,
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
		{"Error type", New(ErrCodeInvalidLayer, "test"), ErrCodeInvalidLayer},
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
		{"with cause", Wrap(ErrCodeCycle, errors.New("a, b"), "cannot order"), "cannot order: a, b"},
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

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"static conflict", &layers.StaticConflictError{Layer: "a", Below: "b"}, ErrCodeStaticConflict},
		{"cycle", &layers.CycleError{Unresolved: []string{"a"}}, ErrCodeCycle},
		{"wrapped cycle", fmt.Errorf("solve: %w", &layers.CycleError{}), ErrCodeCycle},
		{"duplicate", fmt.Errorf("%w: %q", layers.ErrDuplicateName, "a"), ErrCodeDuplicateLayer},
		{"unknown", fmt.Errorf("%w: %q", layers.ErrUnknownLayer, "a"), ErrCodeUnknownLayer},
		{"invalid name", layers.ErrInvalidName, ErrCodeInvalidLayer},
		{"missing file", fmt.Errorf("open x: %w", fs.ErrNotExist), ErrCodeFileNotFound},
		{"coded", New(ErrCodeInvalidFormat, "bad"), ErrCodeInvalidFormat},
		{"index overflow", &layers.IndexOverflowError{Layer: "a", Below: "b"}, ErrCodeStaticConflict},
		{"body too large", &http.MaxBytesError{Limit: 10}, ErrCodePayloadTooLarge},
		{"wrapped body too large", Wrap(ErrCodeInvalidInput, &http.MaxBytesError{Limit: 10}, "decode json"), ErrCodePayloadTooLarge},
		{"other", errors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.expected {
				t.Errorf("Classify() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code     Code
		expected int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidFormat, http.StatusBadRequest},
		{ErrCodeDuplicateLayer, http.StatusBadRequest},
		{ErrCodeUnknownLayer, http.StatusBadRequest},
		{ErrCodeStaticConflict, http.StatusUnprocessableEntity},
		{ErrCodeCycle, http.StatusUnprocessableEntity},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeFileNotFound, http.StatusNotFound},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := HTTPStatus(tt.code); got != tt.expected {
				t.Errorf("HTTPStatus(%q) = %d, want %d", tt.code, got, tt.expected)
			}
		})
	}
}
