// Package shipping holds the validated shipping address value object.
package shipping

import (
	"fmt"
	"strings"
)

// Info is a validated, immutable shipping address.
type Info struct {
	Name    string
	Email   string
	Address string
	City    string
	ZipCode string
}

// ValidationError carries the user-facing message for the first field that
// failed validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// New builds an Info from raw form values. Fields are checked in a fixed
// order (name, email, address, city, zip code) and the first failure wins;
// errors are never aggregated. Messages are verbatim contract.
func New(name, email, address, city, zipCode string) (Info, error) {
	if name == "" {
		return Info{}, &ValidationError{Message: "Name cannot be empty"}
	}
	if email == "" {
		return Info{}, &ValidationError{Message: "Email cannot be empty"}
	}
	if !strings.Contains(email, "@") {
		return Info{}, &ValidationError{Message: fmt.Sprintf("Email must contain `@`. Received %s", email)}
	}
	if address == "" {
		return Info{}, &ValidationError{Message: "Address cannot be empty"}
	}
	if city == "" {
		return Info{}, &ValidationError{Message: "City cannot be empty"}
	}
	if zipCode == "" {
		return Info{}, &ValidationError{Message: "Zip code cannot be empty"}
	}
	return Info{
		Name:    name,
		Email:   email,
		Address: address,
		City:    city,
		ZipCode: zipCode,
	}, nil
}
