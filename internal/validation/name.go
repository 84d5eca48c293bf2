package validation

import (
	"errors"
	"strings"
)

// Sanitize strips angle brackets and surrounding whitespace from free-text
// form fields before they are stored or echoed back.
func Sanitize(input string) string {
	input = strings.ReplaceAll(input, "<", "")
	input = strings.ReplaceAll(input, ">", "")
	return strings.TrimSpace(input)
}

// ValidateName validates a person's display name.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}

	if len(name) > 100 {
		return errors.New("name is too long (max 100 characters)")
	}

	return nil
}

// ValidateCompany validates the optional company field.
func ValidateCompany(company string) error {
	if len(company) > 200 {
		return errors.New("company name is too long (max 200 characters)")
	}
	return nil
}
