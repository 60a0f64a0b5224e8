package errors

import (
	"strings"
	"testing"
)

func TestValidateLayerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "modal", false},
		{"valid with dash", "modal-backdrop", false},
		{"valid with dot", "nav.dropdown", false},
		{"valid unicode", "überlay", false},
		{"valid inner space", "side panel", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayerName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayerName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLayer) {
				t.Errorf("ValidateLayerName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidLayer)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"json", "toml"}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty falls back", "", false},
		{"json", "json", false},
		{"toml", "toml", false},
		{"unknown", "xml", true},
		{"case sensitive", "JSON", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}
