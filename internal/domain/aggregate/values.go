package aggregate

import (
	"regexp"
	"strings"

	"auction-marketplace/pkg/errors"
)

// Address is a value object compared by field equality
type Address struct {
	Street string
	Zip    string
	City   string
}

func NewAddress(street, zip, city string) (Address, error) {
	if strings.TrimSpace(street) == "" {
		return Address{}, errors.NewValidationError("street cannot be blank")
	}
	if strings.TrimSpace(zip) == "" {
		return Address{}, errors.NewValidationError("zip cannot be blank")
	}
	if strings.TrimSpace(city) == "" {
		return Address{}, errors.NewValidationError("city cannot be blank")
	}
	return Address{Street: street, Zip: zip, City: city}, nil
}

// Email is a validated value type
type Email string

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func NewEmail(address string) (Email, error) {
	if !emailPattern.MatchString(address) {
		return "", errors.NewValidationErrorf("invalid email address: %s", address)
	}
	return Email(address), nil
}

func (e Email) String() string {
	return string(e)
}
