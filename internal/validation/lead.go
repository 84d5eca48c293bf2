package validation

import (
	"errors"
	"fmt"
)

// ValidateAddress validates a property address from the seller form.
func ValidateAddress(address string) error {
	if len(address) < 5 {
		return errors.New("please enter a complete address")
	}

	if len(address) > 500 {
		return errors.New("address is too long (max 500 characters)")
	}

	return nil
}

// ValidateBucket validates a seller-form selection field (timeline,
// condition, reason) against its length bound.
func ValidateBucket(field, value string, max int) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}

	if len(value) > max {
		return fmt.Errorf("%s is too long (max %d characters)", field, max)
	}

	return nil
}

// ValidateContact validates the seller's free-form contact string
// (phone or email, their choice).
func ValidateContact(contact string) error {
	if len(contact) < 3 {
		return errors.New("contact info is required")
	}

	if len(contact) > 254 {
		return errors.New("contact info is too long (max 254 characters)")
	}

	return nil
}
