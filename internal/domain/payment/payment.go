// Package payment holds the validated payment instruments and the mock
// payment gateway that authorizes them.
package payment

import (
	"regexp"
	"strings"
)

// Supported payment methods.
const (
	MethodCreditCard = "credit_card"
	MethodPaypal     = "paypal"
)

// Info is a validated payment instrument accepted by a Gateway.
type Info interface {
	Method() string
}

// CardInfo is validated credit card data.
type CardInfo struct {
	Number string
	Expiry string
	CVV    string
}

func (CardInfo) Method() string { return MethodCreditCard }

// PaypalInfo is a validated PayPal account reference.
type PaypalInfo struct {
	Email string
}

func (PaypalInfo) Method() string { return MethodPaypal }

// ValidationError carries the user-facing message for the first field that
// failed validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Month 01-12, two digit year.
var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// NewCardInfo validates raw card fields in a fixed order (number, expiry,
// cvv); the first failure wins and its message is verbatim contract.
func NewCardInfo(number, expiry, cvv string) (CardInfo, error) {
	if !allDigits(number) || len(number) < 13 || len(number) > 19 {
		return CardInfo{}, &ValidationError{Message: "Please provide a valid card number"}
	}
	if !expiryPattern.MatchString(expiry) {
		return CardInfo{}, &ValidationError{Message: "Please provide a valid expiry date"}
	}
	if !allDigits(cvv) || len(cvv) < 3 || len(cvv) > 4 {
		return CardInfo{}, &ValidationError{Message: "Please provide a valid cvv"}
	}
	return CardInfo{Number: number, Expiry: expiry, CVV: cvv}, nil
}

// NewPaypalInfo validates a raw PayPal email.
func NewPaypalInfo(email string) (PaypalInfo, error) {
	if email == "" || !strings.Contains(email, "@") {
		return PaypalInfo{}, &ValidationError{Message: "Please provide a valid email"}
	}
	return PaypalInfo{Email: email}, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
