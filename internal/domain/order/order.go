// Package order holds the immutable order snapshot produced by a successful
// checkout.
package order

import (
	"reflect"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/Katharina-R/online-bookstore/internal/domain/cart"
	"github.com/Katharina-R/online-bookstore/internal/domain/shipping"
)

// ErrEmptyOrder rejects order construction without line items.
var ErrEmptyOrder = errors.New("Cannot create an order without items")

// StatusConfirmed is the only status an order ever has in this system.
const StatusConfirmed = "Confirmed"

// DateFormat is the serialization layout for order dates.
const DateFormat = "2006-01-02 15:04:05"

// Order is an immutable snapshot of a completed purchase. The items slice is
// a copy frozen at construction; later cart mutation never affects it.
// Orders sort ascending by OrderDate.
type Order struct {
	ID            string
	UserEmail     string
	Items         []cart.Item
	ShippingInfo  shipping.Info
	PaymentMethod string
	TransactionID string
	TotalAmount   decimal.Decimal
	OrderDate     time.Time
	Status        string
}

// New builds an Order from the current cart items, capturing the creation
// time. The total amount is stored rounded to 2 decimal places.
func New(
	id string,
	userEmail string,
	items []cart.Item,
	shippingInfo shipping.Info,
	paymentMethod string,
	transactionID string,
	totalAmount decimal.Decimal,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	snapshot := make([]cart.Item, len(items))
	copy(snapshot, items)

	return &Order{
		ID:            id,
		UserEmail:     userEmail,
		Items:         snapshot,
		ShippingInfo:  shippingInfo,
		PaymentMethod: paymentMethod,
		TransactionID: transactionID,
		TotalAmount:   totalAmount.Round(2),
		OrderDate:     time.Now(),
		Status:        StatusConfirmed,
	}, nil
}

// Before reports whether o was created before other.
func (o *Order) Before(other *Order) bool {
	return o.OrderDate.Before(other.OrderDate)
}

// Record is the plain serialized form of an Order. Two orders are equal iff
// their Records are equal, so transient representation details (decimal
// exponents, monotonic clock readings) never affect equality.
type Record struct {
	OrderID      string         `json:"order_id"`
	UserEmail    string         `json:"user_email"`
	Items        []ItemRecord   `json:"items"`
	ShippingInfo ShippingRecord `json:"shipping_info"`
	TotalAmount  string         `json:"total_amount"`
	OrderDate    string         `json:"order_date"`
	Status       string         `json:"status"`
}

// ItemRecord is one serialized line item.
type ItemRecord struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// ShippingRecord is the serialized shipping address.
type ShippingRecord struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

// ToRecord serializes the order.
func (o *Order) ToRecord() Record {
	items := make([]ItemRecord, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemRecord{
			Title:    item.Book.Title,
			Quantity: item.Quantity,
			Price:    item.Book.Price.StringFixed(2),
		}
	}
	return Record{
		OrderID:   o.ID,
		UserEmail: o.UserEmail,
		Items:     items,
		ShippingInfo: ShippingRecord{
			Name:    o.ShippingInfo.Name,
			Email:   o.ShippingInfo.Email,
			Address: o.ShippingInfo.Address,
			City:    o.ShippingInfo.City,
			ZipCode: o.ShippingInfo.ZipCode,
		},
		TotalAmount: o.TotalAmount.StringFixed(2),
		OrderDate:   o.OrderDate.Format(DateFormat),
		Status:      o.Status,
	}
}

// Equal reports structural equality: both orders serialize to the same
// Record.
func (o *Order) Equal(other *Order) bool {
	return reflect.DeepEqual(o.ToRecord(), other.ToRecord())
}
