// Package notify implements the order confirmation side effect. The real
// system would talk to a mail provider; this implementation writes the
// confirmation to the process log.
package notify

import (
	"context"
	"fmt"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/Katharina-R/online-bookstore/internal/domain/order"
)

// ConsoleNotifier logs order confirmations instead of sending email.
type ConsoleNotifier struct{}

// NewConsoleNotifier returns a ConsoleNotifier.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

// SendOrderConfirmation logs the confirmation and reports success. It is
// called exactly once per successful checkout.
func (n *ConsoleNotifier) SendOrderConfirmation(ctx context.Context, email string, o *order.Order) bool {
	items := make([]string, len(o.Items))
	for i, item := range o.Items {
		items[i] = fmt.Sprintf("%s x%d @ $%s", item.Book.Title, item.Quantity, item.Book.Price.StringFixed(2))
	}
	zctx.From(ctx).Info("order confirmation sent",
		zap.String("to", email),
		zap.String("order_id", o.ID),
		zap.String("order_date", o.OrderDate.Format(order.DateFormat)),
		zap.String("total_amount", o.TotalAmount.StringFixed(2)),
		zap.Strings("items", items),
		zap.String("shipping_address", o.ShippingInfo.Address),
	)
	return true
}
