package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "router-1", false},
		{"valid with dots", "core.sw.01", false},
		{"valid with underscore", "fw_edge", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 300), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTopologyName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "office-lan", false},
		{"valid with underscore", "dc_west", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "..secret", true},
		{"control char", "lab\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTopologyName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTopologyName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
