package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"bits", "0110", false},
		{"unboxed", "#a:5", false},
		{"unicode", "λ", false},

		{"too long", strings.Repeat("x", MaxLabelLength+1), true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("code = %v", GetCode(err))
			}
		})
	}
}

func TestValidateDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"semicolon", ";", false},
		{"word", "--", false},

		{"empty", "", true},
		{"space", "; ;", true},
		{"tab", "\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDelimiter(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDelimiter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRedisURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", false},
		{"tls", "rediss://user:pw@cache:6380", false},

		{"empty", "", true},
		{"http", "http://localhost:6379", true},
		{"no scheme", "localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRedisURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRedisURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/tree.tex", false},
		{"absolute", "/tmp/tree.svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"control char", "tree\x01.tex", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
