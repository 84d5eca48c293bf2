package validation

import (
	"errors"
	"regexp"
)

var phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)\.]+$`)

// ValidatePhone validates the optional phone field. Empty is allowed.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}

	if len(phone) > 30 {
		return errors.New("phone number is too long (max 30 characters)")
	}

	if !phonePattern.MatchString(phone) {
		return errors.New("invalid phone number format")
	}

	return nil
}
