package payment

import (
	"strings"

	"github.com/google/uuid"
)

// Result is the gateway's decision. An empty TransactionID signals that no
// chargeable transaction was produced.
type Result struct {
	Message       string
	TransactionID string
}

// Authorized reports whether the payment produced a chargeable transaction.
func (r Result) Authorized() bool {
	return r.TransactionID != ""
}

// Gateway authorizes payments. Implementations must be pure decision
// functions over the payment info: no retries, no timeouts, no persistence.
type Gateway interface {
	Process(info Info) Result
}

// MockGateway approves every payment except credit cards whose number ends in
// the literal digits "1111". It has no network side effects.
type MockGateway struct {
	newID func() string
}

// NewMockGateway returns a MockGateway minting uuid-based transaction ids.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		newID: func() string { return uuid.New().String() },
	}
}

// Process implements Gateway.
func (g *MockGateway) Process(info Info) Result {
	if card, ok := info.(CardInfo); ok && strings.HasSuffix(card.Number, "1111") {
		return Result{Message: "Payment failed: Invalid card number"}
	}
	return Result{
		Message:       "Payment processed successfully",
		TransactionID: "TXN" + g.newID(),
	}
}
