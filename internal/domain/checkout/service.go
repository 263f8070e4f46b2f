// Package checkout implements the checkout flow: it turns the mutable cart
// into an immutable, persisted order through ordered validation, discount
// resolution, and payment authorization.
package checkout

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Katharina-R/online-bookstore/internal/domain/cart"
	"github.com/Katharina-R/online-bookstore/internal/domain/discount"
	"github.com/Katharina-R/online-bookstore/internal/domain/order"
	"github.com/Katharina-R/online-bookstore/internal/domain/payment"
	"github.com/Katharina-R/online-bookstore/internal/domain/shipping"
	"github.com/Katharina-R/online-bookstore/internal/domain/user"
)

// OrderStore persists completed orders keyed by order id.
type OrderStore interface {
	Save(ctx context.Context, o *order.Order) error
}

// Notifier delivers the order confirmation. Its return value reports
// delivery success but never affects the checkout outcome.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, email string, o *order.Order) bool
}

// Request is the flat set of submitted checkout form fields. Missing form
// fields arrive as empty strings.
type Request struct {
	Name    string
	Email   string
	Address string
	City    string
	ZipCode string

	DiscountCode  string
	PaymentMethod string

	CardNumber string
	ExpiryDate string
	CVV        string

	PaypalEmail string
}

// Result is the outcome of a checkout attempt. Notices are the user-facing
// success messages emitted along the way; they are populated even when a
// later step fails, so the caller can still display them.
type Result struct {
	OrderID string
	Order   *order.Order
	Notices []string
}

// Service runs the checkout flow. Each step either advances or terminates
// the flow with a specific user-facing error; no step is retried. Either all
// steps through persistence complete, or no order is created and the cart is
// left untouched.
type Service struct {
	orders   OrderStore
	gateway  payment.Gateway
	notifier Notifier

	newID func() string
}

// NewService creates a checkout Service with the required collaborators.
func NewService(orders OrderStore, gateway payment.Gateway, notifier Notifier) *Service {
	return &Service{
		orders:   orders,
		gateway:  gateway,
		notifier: notifier,
		newID:    func() string { return uuid.New().String() },
	}
}

// Checkout drives the flow for one shopper. usr may be nil when no user
// session exists; the order is then persisted without touching any history.
func (s *Service) Checkout(ctx context.Context, c *cart.Cart, usr *user.User, req Request) (Result, error) {
	if c.IsEmpty() {
		return Result{}, ErrEmptyCart
	}

	ship, err := shipping.New(req.Name, req.Email, req.Address, req.City, req.ZipCode)
	if err != nil {
		return Result{}, err
	}

	disc, err := discount.Resolve(req.DiscountCode)
	if err != nil {
		return Result{}, err
	}

	var notices []string
	total := c.TotalPrice()
	rate := decimal.Zero
	if disc != nil {
		notices = append(notices, disc.AppliedNotice(disc.Saved(total)))
		rate = disc.Rate
	}

	info, err := s.paymentInfo(req)
	if err != nil {
		return Result{Notices: notices}, err
	}

	res := s.gateway.Process(info)
	if !res.Authorized() {
		return Result{Notices: notices}, &AuthorizationError{Message: res.Message}
	}

	orderID := s.newID()[:8]
	totalAmount := total.Mul(decimal.NewFromInt(1).Sub(rate)).Round(2)

	o, err := order.New(orderID, ship.Email, c.Items(), ship, info.Method(), res.TransactionID, totalAmount)
	if err != nil {
		return Result{Notices: notices}, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return Result{Notices: notices}, errors.Wrap(err, "save order")
	}
	if usr != nil {
		usr.AddOrder(o)
	}
	c.Clear()

	s.notifier.SendOrderConfirmation(ctx, o.UserEmail, o)
	notices = append(notices, "Payment successful! Your order has been confirmed.")

	return Result{OrderID: o.ID, Order: o, Notices: notices}, nil
}

// paymentInfo builds the payment instrument for the requested method.
// Factory failures take precedence over the method check only when the
// method itself is one of the recognized values.
func (s *Service) paymentInfo(req Request) (payment.Info, error) {
	switch req.PaymentMethod {
	case payment.MethodCreditCard:
		info, err := payment.NewCardInfo(req.CardNumber, req.ExpiryDate, req.CVV)
		if err != nil {
			return nil, err
		}
		return info, nil
	case payment.MethodPaypal:
		info, err := payment.NewPaypalInfo(req.PaypalEmail)
		if err != nil {
			return nil, err
		}
		return info, nil
	default:
		return nil, &InvalidPaymentMethodError{Method: req.PaymentMethod}
	}
}
