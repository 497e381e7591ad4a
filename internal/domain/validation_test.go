package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCustomerName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"valid name", "Ramesh Kumar", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 256), true},
		{"max length", strings.Repeat("a", 255), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustomerName(tt.input)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.expectError && !errors.Is(err, ErrInvalidCustomerName) {
				t.Errorf("expected ErrInvalidCustomerName, got %v", err)
			}
		})
	}
}

func TestValidateMobile(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"valid 10 digits", "9876543210", false},
		{"valid with country code", "+919876543210", false},
		{"empty", "", true},
		{"too short", "12345", true},
		{"too long", "1234567890123456", true},
		{"letters", "98765abcde", true},
		{"plus in middle", "98+76543210", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMobile(tt.input)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
