package checkout

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrEmptyCart terminates the flow before any validation runs.
// The message is surfaced to the shopper verbatim.
var ErrEmptyCart = errors.New("Your cart is empty!")

// InvalidPaymentMethodError rejects payment methods other than "credit_card"
// and "paypal".
type InvalidPaymentMethodError struct {
	Method string
}

func (e *InvalidPaymentMethodError) Error() string {
	return fmt.Sprintf("Received invalid payment method %s", e.Method)
}

// AuthorizationError signals a gateway result without a transaction id. It
// carries the gateway's own failure message.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}
