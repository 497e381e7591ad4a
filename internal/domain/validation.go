package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidCustomerName = errors.New("invalid customer name")
	ErrInvalidMobile       = errors.New("invalid mobile number")
)

// Validation constants
const (
	MaxCustomerNameLength = 255
	MinMobileLength       = 7
	MaxMobileLength       = 15
)

var mobileRegex = regexp.MustCompile(`^\+?[0-9]+$`)

// ValidateCustomerName validates a customer name.
func ValidateCustomerName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCustomerName)
	}

	if len(name) > MaxCustomerNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCustomerName, MaxCustomerNameLength)
	}

	return nil
}

// ValidateMobile validates a mobile number used as the unique lookup key.
func ValidateMobile(mobile string) error {
	mobile = strings.TrimSpace(mobile)

	if mobile == "" {
		return fmt.Errorf("%w: mobile cannot be empty", ErrInvalidMobile)
	}

	digits := strings.TrimPrefix(mobile, "+")
	if len(digits) < MinMobileLength || len(digits) > MaxMobileLength {
		return fmt.Errorf("%w: mobile must be %d-%d digits", ErrInvalidMobile, MinMobileLength, MaxMobileLength)
	}

	if !mobileRegex.MatchString(mobile) {
		return fmt.Errorf("%w: mobile may contain only digits and a leading +", ErrInvalidMobile)
	}

	return nil
}
